// internal/app/features/recipes/routes.go
package recipes

import (
	"github.com/go-chi/chi/v5"
	"github.com/potluckhq/potluck/internal/app/system/auth"
)

// MountRoutes registers the recipe endpoints under /api/v1/recipes.
// Browsing is open; mutations require a signed-in principal.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Get("/filters", h.ServeFiltered)
		r.Get("/{id}", h.ServeGet)
		r.Post("/batch", h.ServeBatch)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSignedIn)
			r.Post("/", h.ServeCreate)
			r.Patch("/{id}", h.ServePatch)
			r.Delete("/{id}", h.ServeDelete)
		})
	})
}
