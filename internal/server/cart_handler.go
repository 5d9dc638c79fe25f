package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nurak20/smart-pos-web/internal/cart"
	"github.com/nurak20/smart-pos-web/internal/catalog"
	"github.com/nurak20/smart-pos-web/internal/domain"
)

type CartHandler struct {
	store *cart.Store
	cache *catalog.Cache
}

func NewCartHandler(store *cart.Store, cache *catalog.Cache) *CartHandler {
	return &CartHandler{store: store, cache: cache}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.CartTotals `json:"totals"`
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Lines:  h.store.Lines(),
		Totals: h.store.Totals(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "missing_product_id", "product_id is required")
		return
	}

	item, ok := findItem(h.cache.Items(), req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product is not in the catalog")
		return
	}

	h.store.Add(r.Context(), item)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.store.SetQuantity(r.Context(), productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.store.Remove(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func findItem(items []domain.CatalogItem, productID string) (domain.CatalogItem, bool) {
	for _, item := range items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.CatalogItem{}, false
}
