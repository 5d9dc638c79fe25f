package server

import (
	"net/http"

	"github.com/nurak20/smart-pos-web/internal/catalog"
	"github.com/nurak20/smart-pos-web/internal/domain"
)

type CatalogHandler struct {
	cache *catalog.Cache
}

func NewCatalogHandler(cache *catalog.Cache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

type CatalogResponse struct {
	Products   []domain.CatalogItem `json:"products"`
	Categories []domain.Category    `json:"categories"`
}

// GET /api/v1/catalog?category=<id>&q=<query>
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	respondJSON(w, http.StatusOK, CatalogResponse{
		Products:   h.cache.Filter(categoryID, query),
		Categories: catalog.Categories,
	})
}

// POST /api/v1/catalog/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.cache.Refresh(r.Context())
	respondJSON(w, http.StatusOK, CatalogResponse{
		Products:   h.cache.Items(),
		Categories: catalog.Categories,
	})
}
