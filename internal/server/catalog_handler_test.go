package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurak20/smart-pos-web/internal/catalog"
)

func newCatalogFixture(t *testing.T) *CatalogHandler {
	t.Helper()

	cache := catalog.NewCache(staticFetcher{
		{ProductID: "P1", ProductName: "Coffee", Code: "COF-01", CategoryID: "beverages", SellingPrice: 10.00, Stock: 5},
		{ProductID: "P2", ProductName: "Cable", Code: "ELE-01", CategoryID: "electronics", SellingPrice: 7.25, Stock: 0},
	})
	cache.Refresh(context.Background())
	return NewCatalogHandler(cache)
}

func decodeCatalog(t *testing.T, rec *httptest.ResponseRecorder) CatalogResponse {
	t.Helper()
	var resp CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCatalogHandler_GetAll(t *testing.T) {
	handler := newCatalogFixture(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCatalog(t, rec)
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, catalog.Categories, resp.Categories)
}

func TestCatalogHandler_GetFiltered(t *testing.T) {
	handler := newCatalogFixture(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest("GET", "/?category=beverages&q=cof", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCatalog(t, rec)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "P1", resp.Products[0].ProductID)
}

func TestCatalogHandler_GetNoMatch(t *testing.T) {
	handler := newCatalogFixture(t)

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest("GET", "/?q=nonexistent", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCatalog(t, rec).Products)
}

func TestCatalogHandler_Refresh(t *testing.T) {
	fetcher := staticFetcher{
		{ProductID: "P3", ProductName: "Tea", Code: "TEA-01", CategoryID: "beverages", SellingPrice: 1.50, Stock: 9},
	}
	handler := NewCatalogHandler(catalog.NewCache(fetcher))

	rec := httptest.NewRecorder()
	handler.Refresh(rec, httptest.NewRequest("POST", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCatalog(t, rec)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, fetcher[0], resp.Products[0])
}
