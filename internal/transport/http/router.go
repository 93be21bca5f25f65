package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/handlers"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/models"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	Guard          *authmw.Guard
}

// Register lays out the full route table. Role requirements live here, next to
// the routes they protect, and the guard reads them directly.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	api.GET("/users/my-profile", d.AuthHandler.MyProfile, d.Guard.Require())

	products := api.Group("/products")
	products.GET("", d.ProductHandler.List)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}
	products.GET("/:id", d.ProductHandler.Get)

	adminOnly := d.Guard.Require(models.RoleAdmin)
	products.POST("", d.ProductHandler.Create, adminOnly)
	products.PATCH("/:id", d.ProductHandler.Patch, adminOnly)
	products.DELETE("/:id", d.ProductHandler.Delete, adminOnly)
}
