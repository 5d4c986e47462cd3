// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

// MountRoutes registers the account endpoints under /api/v1/auth.
// None of them require a signed-in principal.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.ServeLogin)
		r.Post("/signup", h.ServeSignup)
		r.Post("/confirmAccount", h.ServeConfirm)
		r.Post("/refresh", h.ServeRefresh)
	})
}
