package httpx

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler translates every error reaching echo into the fail envelope.
// Domain handlers raise *echo.HTTPError where the problem is detected; anything
// else is a 500 with a generic body, the cause only goes to the log.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		messages := []string{"internal server error"}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case string:
				messages = []string{m}
			case []string:
				messages = m
			default:
				messages = []string{http.StatusText(code)}
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", "status", code, "error", err,
				"method", c.Request().Method, "path", c.Request().URL.Path)
			messages = []string{"internal server error"}
		}

		resp := FailResponse{
			StatusCode: code,
			Message:    messages,
			Error:      http.StatusText(code),
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, resp)
		}
		if werr != nil {
			log.Error("error response write failed", "error", werr)
		}
	}
}
