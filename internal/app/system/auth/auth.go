// internal/app/system/auth/auth.go

// Package auth parses bearer tokens at the routing boundary and hands
// the authenticated principal to handlers through the request context.
// Handlers pass the principal explicitly into stores and services; no
// code below the boundary reads ambient security state.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/app/system/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated caller: the account id and role
// extracted from a verified access token.
type Principal struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool { return p.Role == "admin" }

type ctxKey struct{}

// Current returns the principal for the request, if one was loaded.
func Current(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(ctxKey{}).(*Principal)
	return p, ok
}

func withPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, p))
}

// WithTestPrincipal injects a principal for handler tests.
func WithTestPrincipal(r *http.Request, p *Principal) *http.Request {
	return withPrincipal(r, p)
}

// BearerToken extracts the token from an Authorization header, or ""
// if the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// AccountResolver loads the account behind a token subject so the
// middleware can attach id and role. Implemented by the user store.
type AccountResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (*Principal, error)
}

// Middleware verifies access tokens and loads the principal.
type Middleware struct {
	tokens   *token.Manager
	accounts AccountResolver
}

// NewMiddleware builds the auth middleware.
func NewMiddleware(tokens *token.Manager, accounts AccountResolver) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts}
}

// LoadPrincipal parses a bearer access token if present and, when it
// verifies, resolves the account and stores the principal in context.
// Requests without a token pass through untouched; enforcement is the
// job of RequireSignedIn / RequireRole on protected routes.
func (m *Middleware) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Parse(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		p, err := m.accounts.ResolvePrincipal(ctx, claims.Subject)
		if err != nil || p == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withPrincipal(r, p))
	})
}

// RequireSignedIn rejects requests without a loaded principal with a
// structured 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Current(r); !ok {
			httpapi.WriteError(w, r, http.StatusUnauthorized, httpapi.CodeUnauthorized, "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose principal lacks one of the allowed
// roles. Unauthenticated requests get 401, wrong-role requests get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := Current(r)
			if !ok {
				httpapi.WriteError(w, r, http.StatusUnauthorized, httpapi.CodeUnauthorized, "Authentication required.")
				return
			}
			if _, has := set[strings.ToLower(p.Role)]; !has {
				httpapi.WriteError(w, r, http.StatusForbidden, httpapi.CodeForbidden, "You don't have permission to do that.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
