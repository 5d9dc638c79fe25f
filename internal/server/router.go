package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
}

// NewRouter builds the terminal's HTTP surface.
func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/session", h.Auth.Get)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.Catalog.Get)
			r.Post("/refresh", h.Catalog.Refresh)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.Checkout.Get)
			r.Post("/open", h.Checkout.Open)
			r.Put("/payment", h.Checkout.TogglePayment)
			r.Post("/confirm", h.Checkout.Confirm)
			r.Post("/cancel", h.Checkout.Cancel)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Admin.ListProducts)
			r.Post("/", h.Admin.CreateProduct)
			r.Get("/{id}", h.Admin.GetProduct)
			r.Put("/{id}", h.Admin.UpdateProduct)
			r.Delete("/{id}", h.Admin.DeleteProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Admin.ListCategories)
			r.Post("/", h.Admin.CreateCategory)
			r.Put("/{id}", h.Admin.UpdateCategory)
			r.Delete("/{id}", h.Admin.DeleteCategory)
		})

		r.Get("/orders/{id}", h.Admin.GetOrder)
		r.Get("/dashboard", h.Admin.Dashboard)
	})

	return r
}
