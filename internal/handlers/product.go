package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/cache"
	"github.com/Skotchmaster/product_catalog/internal/httpx"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const productCacheTTL = 5 * time.Minute

type ProductHandler struct {
	Products *repo.ProductRepo
	Producer *mykafka.Producer
	Redis    *redis.Client
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}
	return nil
}

func parseIntParam(s string) *int {
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	return nil
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if msgs := req.Validate(); len(msgs) > 0 {
		l.Warn("product_create_failed", "status", 400, "reason", "validation")
		return httpx.ValidationError(msgs)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.Products.Create(ctx, &product); err != nil {
		l.Error("product_create_failed", "status", 500, "error", err)
		return err
	}

	h.publish(c, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_create_success", "product_id", product.ID)
	return httpx.Success(c, http.StatusCreated, "product has been added successfully", echo.Map{
		"product": product,
	})
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	filter := repo.ProductFilter{
		Name:     c.QueryParam("name"),
		MinPrice: parseFloatParam(c.QueryParam("minPrice")),
		MaxPrice: parseFloatParam(c.QueryParam("maxPrice")),
		MinStock: parseIntParam(c.QueryParam("minStock")),
		MaxStock: parseIntParam(c.QueryParam("maxStock")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		PerPage:  parseIntDefault(c.QueryParam("perPage"), repo.DefaultPerPage),
	}

	items, pageInfo, err := h.Products.FindAll(ctx, filter)
	if err != nil {
		l.Error("product_list_failed", "status", 500, "error", err)
		return err
	}

	return httpx.Success(c, http.StatusOK, "", echo.Map{
		"pageInfo": pageInfo,
		"products": items,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_get_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var cached models.Product
	if ok, err := cache.Get(ctx, h.Redis, productCacheKey(uint(id)), &cached); err != nil {
		l.Warn("product_cache_read_failed", "error", err)
	} else if ok {
		return httpx.Success(c, http.StatusOK, "", echo.Map{"product": cached})
	}

	product, err := h.Products.FindOne(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_get_failed", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "the product is not found")
		}
		l.Error("product_get_failed", "status", 500, "error", err)
		return err
	}

	if err := cache.Set(ctx, h.Redis, productCacheKey(product.ID), product, productCacheTTL); err != nil {
		l.Warn("product_cache_write_failed", "error", err)
	}

	return httpx.Success(c, http.StatusOK, "", echo.Map{"product": product})
}

func (h *ProductHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_patch_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if msgs := req.Validate(); len(msgs) > 0 {
		l.Warn("product_patch_failed", "status", 400, "reason", "validation")
		return httpx.ValidationError(msgs)
	}

	product, err := h.Products.Update(ctx, uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_patch_failed", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "the product is not found")
		}
		l.Error("product_patch_failed", "status", 500, "error", err)
		return err
	}

	if err := cache.Delete(ctx, h.Redis, productCacheKey(uint(id))); err != nil {
		l.Warn("product_cache_invalidate_failed", "error", err)
	}

	h.publish(c, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_patch_success", "product_id", product.ID)
	return httpx.Success(c, http.StatusOK, "product has been updated successfully", nil)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Products.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_failed", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "the product is not found")
		}
		l.Error("product_delete_failed", "status", 500, "error", err)
		return err
	}

	if err := cache.Delete(ctx, h.Redis, productCacheKey(uint(id))); err != nil {
		l.Warn("product_cache_invalidate_failed", "error", err)
	}

	h.publish(c, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product_delete_success", "product_id", id)
	return httpx.Success(c, http.StatusOK, "product has been deleted successfully", nil)
}

func (h *ProductHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", "product_events", "error", err)
	}
}
