// internal/app/features/categories/routes.go
package categories

import (
	"github.com/go-chi/chi/v5"
	"github.com/potluckhq/potluck/internal/app/system/auth"
)

// MountRoutes registers the category catalog endpoints under
// /api/v1/categories. Reads are open; mutations are admin-only.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Get("/{id}", h.ServeGet)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("admin"))
			r.Post("/", h.ServeCreate)
			r.Delete("/{id}", h.ServeDelete)
		})
	})
}
