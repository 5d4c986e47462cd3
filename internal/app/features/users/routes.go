// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/potluckhq/potluck/internal/app/system/auth"
)

// MountRoutes registers the account endpoints. Patterns are spelled out
// flat because the calendar feature shares the /api/v1/users/{id}
// prefix. Everything here requires a signed-in principal; per-resource
// ownership is checked inside the handlers.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/api/v1/users/details", h.ServeDetails)

		r.Get("/api/v1/users/{id}/grocery", h.ServeGetGrocery)
		r.Patch("/api/v1/users/{id}/grocery", h.ServePatchGrocery)

		r.Get("/api/v1/users/{id}/recipes", h.ServeOwnedRecipes)

		r.Get("/api/v1/users/{id}/saved-recipes", h.ServeSavedRecipes)
		r.Post("/api/v1/users/{id}/saved-recipes", h.ServeSaveRecipe)
		r.Delete("/api/v1/users/{id}/saved-recipes", h.ServeUnsaveRecipe)
		r.Patch("/api/v1/users/{id}/saved-recipes", h.ServeReplaceSaved)
		r.Get("/api/v1/users/{id}/is-saved-recipe", h.ServeIsSaved)
	})
}
