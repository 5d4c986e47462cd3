// internal/app/features/calendar/routes.go
package calendar

import (
	"github.com/go-chi/chi/v5"
	"github.com/potluckhq/potluck/internal/app/system/auth"
)

// MountRoutes registers the calendar endpoints. The {id} parameter is
// the tenant (account) id, named to match the other /api/v1/users/{id}
// routes so the patterns share one chi subtree.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/api/v1/users/{id}/calendar/{date}", h.ServeGetDay)
		r.Put("/api/v1/users/{id}/calendar", h.ServeMerge)
		r.Delete("/api/v1/users/{id}/calendar", h.ServeDelete)
	})
}
