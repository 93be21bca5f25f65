package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope every 2xx body uses.
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// FailResponse is the envelope every error body uses.
type FailResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
	Error      string   `json:"error"`
}

func Success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, SuccessResponse{
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

// ValidationError carries field-level messages through echo's error path.
func ValidationError(messages []string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, messages)
}
