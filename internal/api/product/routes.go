package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the product endpoints. Reads are public, mutations
// run behind the supplied auth middleware chain.
func (h *Handler) RegisterRoutes(r chi.Router, guards ...func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProductsHandler)
		r.Get("/{productID}", h.getProductHandler)
		r.Get("/slug/{slug}", h.getProductBySlugHandler)

		r.Group(func(r chi.Router) {
			r.Use(guards...)
			r.Post("/", h.createProductHandler)
			r.Put("/{productID}", h.updateProductHandler)
			r.Delete("/{productID}", h.deleteProductHandler)
		})
	})
}
