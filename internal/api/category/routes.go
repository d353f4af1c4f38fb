package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the category endpoints. Reads are public, mutations
// run behind the supplied auth middleware chain.
func (h *Handler) RegisterRoutes(r chi.Router, guards ...func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategoriesHandler)
		r.Get("/{categoryID}", h.getCategoryHandler)

		r.Group(func(r chi.Router) {
			r.Use(guards...)
			r.Post("/", h.createCategoryHandler)
			r.Put("/{categoryID}", h.updateCategoryHandler)
			r.Delete("/{categoryID}", h.deleteCategoryHandler)
		})
	})
}
