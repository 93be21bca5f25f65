package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

func seedProduct(t *testing.T, env *testEnv, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":        "keyboard",
		"description": "mechanical",
		"price":       49.99,
		"stock":       12,
	})

	require.NoError(t, env.P.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeSuccess(t, rec)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "product has been added successfully", resp.Message)

	product, ok := resp.Data["product"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "keyboard", product["name"])
	assert.Equal(t, 49.99, product["price"])
	assert.Equal(t, float64(12), product["stock"])
	assert.NotEmpty(t, product["id"])
}

func TestCreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"description": "no name, no price",
	})

	err := env.P.Create(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)

	msgs, ok := he.Message.([]string)
	require.True(t, ok, "expected field messages")
	assert.Len(t, msgs, 2)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedProduct(t, env, models.Product{Name: "keyboard", Description: "mechanical", Price: 49.99, Stock: 12})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, env.P.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSuccess(t, rec)
	raw, err := json.Marshal(resp.Data["product"])
	require.NoError(t, err)
	var got models.Product
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, seeded.Name, got.Name)
	assert.Equal(t, seeded.Price, got.Price)
	assert.Equal(t, seeded.Stock, got.Stock)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.P.Get(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetProduct_BadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := env.P.Get(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, models.Product{Name: "keyboard", Description: "mechanical", Price: 49.99, Stock: 12})

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/products/1", map[string]any{"price": 39.99})
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, env.P.Patch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSuccess(t, rec)
	assert.Equal(t, "product has been updated successfully", resp.Message)
	assert.Nil(t, resp.Data)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, 1).Error)
	assert.Equal(t, 39.99, stored.Price)
	assert.Equal(t, "keyboard", stored.Name)
	assert.Equal(t, 12, stored.Stock)
}

func TestPatchProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/products/99", map[string]any{"price": 1.0})
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.P.Patch(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, models.Product{Name: "keyboard", Price: 49.99})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, env.P.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSuccess(t, rec)
	assert.Equal(t, "product has been deleted successfully", resp.Message)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodDelete, "/api/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.P.Delete(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListProducts_FiltersAndPageInfo(t *testing.T) {
	env := newTestEnv(t)

	for _, p := range []models.Product{
		{Name: "a", Price: 50},
		{Name: "b", Price: 100},
		{Name: "c", Price: 150},
		{Name: "d", Price: 200},
	} {
		seedProduct(t, env, p)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products?minPrice=75&maxPrice=175", nil)
	require.NoError(t, env.P.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSuccess(t, rec)

	products, ok := resp.Data["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	second := products[1].(map[string]any)
	assert.Equal(t, float64(150), first["price"])
	assert.Equal(t, float64(100), second["price"])

	pageInfo, ok := resp.Data["pageInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), pageInfo["totalItems"])
	assert.Equal(t, float64(1), pageInfo["totalPages"])
	assert.Equal(t, float64(1), pageInfo["currentPage"])
}

func TestListProducts_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products", nil)
	require.NoError(t, env.P.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSuccess(t, rec)
	products, ok := resp.Data["products"].([]any)
	require.True(t, ok)
	assert.Empty(t, products)

	pageInfo, ok := resp.Data["pageInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), pageInfo["totalPages"])
}
