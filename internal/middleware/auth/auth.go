package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

type Guard struct {
	Users  *repo.UserRepo
	Secret []byte
}

// Require gates a route behind a valid bearer token. With no roles given any
// authenticated user passes; otherwise the resolved user's role must be in the
// set. The user row is re-fetched on every request so role changes and deleted
// accounts bite immediately instead of at token expiry.
func (g *Guard) Require(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authz, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "a token is required for authentication")
			}

			claims, err := tokens.Parse(strings.TrimPrefix(authz, "Bearer "), g.Secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			userID, err := claims.UserID()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := g.Users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A vanished user gets the same answer as a bad token.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user.PasswordHash = ""
			c.Set(userContextKey, user)

			if len(roles) > 0 && !slices.Contains(roles, user.Role) {
				return echo.NewHTTPError(http.StatusUnauthorized, "you are not authorized to access this resource")
			}

			return next(c)
		}
	}
}

// CurrentUser returns the user the guard attached, nil on unguarded routes.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}
