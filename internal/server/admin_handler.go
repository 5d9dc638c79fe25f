package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/nurak20/smart-pos-web/internal/api"
)

// RemoteAPI is the slice of the commerce API client used by the admin
// passthrough endpoints.
type RemoteAPI interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error)
	Put(ctx context.Context, endpoint string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, endpoint string) (json.RawMessage, error)
}

// AdminHandler proxies the product/category CRUD pages, the order-detail
// viewer and the dashboard straight to the remote API. The terminal adds
// nothing beyond auth and error mapping here.
type AdminHandler struct {
	client RemoteAPI
}

func NewAdminHandler(client RemoteAPI) *AdminHandler {
	return &AdminHandler{client: client}
}

// GET /api/v1/products
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.passthroughGet(w, r, api.EndpointProducts)
}

// GET /api/v1/products/{id}
func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	h.passthroughGet(w, r, api.EndpointProductDetails+"/"+chi.URLParam(r, "id"))
}

// POST /api/v1/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.passthroughPost(w, r, api.EndpointProducts)
}

// PUT /api/v1/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.passthroughPut(w, r, api.EndpointProducts+"/"+chi.URLParam(r, "id"))
}

// DELETE /api/v1/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.passthroughDelete(w, r, api.EndpointProducts+"/"+chi.URLParam(r, "id"))
}

// GET /api/v1/categories
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.passthroughGet(w, r, api.EndpointCategories)
}

// POST /api/v1/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.passthroughPost(w, r, api.EndpointCategories)
}

// PUT /api/v1/categories/{id}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.passthroughPut(w, r, api.EndpointCategories+"/"+chi.URLParam(r, "id"))
}

// DELETE /api/v1/categories/{id}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.passthroughDelete(w, r, api.EndpointCategories+"/"+chi.URLParam(r, "id"))
}

// GET /api/v1/orders/{id}
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	h.passthroughGet(w, r, api.EndpointOrders+"/"+chi.URLParam(r, "id"))
}

// GET /api/v1/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.passthroughGet(w, r, api.EndpointDashboard)
}

func (h *AdminHandler) passthroughGet(w http.ResponseWriter, r *http.Request, endpoint string) {
	data, err := h.client.Get(r.Context(), endpoint, r.URL.Query())
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *AdminHandler) passthroughPost(w http.ResponseWriter, r *http.Request, endpoint string) {
	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	data, err := h.client.Post(r.Context(), endpoint, body)
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondRaw(w, http.StatusCreated, data)
}

func (h *AdminHandler) passthroughPut(w http.ResponseWriter, r *http.Request, endpoint string) {
	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	data, err := h.client.Put(r.Context(), endpoint, body)
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func (h *AdminHandler) passthroughDelete(w http.ResponseWriter, r *http.Request, endpoint string) {
	data, err := h.client.Delete(r.Context(), endpoint)
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondRaw(w, http.StatusOK, data)
}

func decodeBody(r *http.Request) (json.RawMessage, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errors.New("invalid JSON")
	}
	return json.RawMessage(raw), nil
}

func handleAPIError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, api.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.As(err, &apiErr):
		respondError(w, apiErr.Status, "upstream_error", apiErr.Message)
	default:
		respondError(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	}
}
