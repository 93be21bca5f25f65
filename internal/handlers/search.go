package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/httpx"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/search"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q must not be empty")
	}

	filter := repo.ProductFilter{
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("perPage"), repo.DefaultPerPage),
	}
	filter.Clamp()

	total, products, err := search.Search(ctx, h.ES, h.Index, q, (filter.Page-1)*filter.PerPage, filter.PerPage)
	if err != nil {
		l.Error("product_search_failed", "status", 500, "error", err)
		return err
	}

	return httpx.Success(c, http.StatusOK, "", echo.Map{
		"total":    total,
		"products": products,
	})
}
