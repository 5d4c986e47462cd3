// internal/app/features/users/handler.go

// Package users implements the account-scoped endpoints: grocery list,
// owned and saved recipe lists, and account details. Every endpoint
// checks that the path id belongs to the signed-in principal; admins
// may act on any account.
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	"github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log     *zap.Logger
	ErrLog  *httpapi.ErrorLogger
	Users   *userstore.Store
	Recipes *recipestore.Store
}

func NewHandler(logger *zap.Logger, users *userstore.Store, recipes *recipestore.Store) *Handler {
	return &Handler{
		Log:     logger,
		ErrLog:  httpapi.NewErrorLogger(logger),
		Users:   users,
		Recipes: recipes,
	}
}

// resourceOwner resolves the {id} path parameter and enforces that the
// principal owns the resource (or is an admin). Writes the error
// response itself; callers bail on ok=false.
func (h *Handler) resourceOwner(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid user id.", err)
		return primitive.NilObjectID, false
	}
	if id != p.ID && !p.IsAdmin() {
		h.ErrLog.Forbidden(w, r, "You cannot access another user's data.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeGetGrocery handles GET /api/v1/users/{id}/grocery. An account
// that never saved a list gets an empty one, not a 404.
func (h *Handler) ServeGetGrocery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Users.GetGrocery(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "users: get grocery", err)
		return
	}
	if g == nil {
		g = &models.Grocery{}
	}
	httpapi.WriteJSON(w, http.StatusOK, g)
}

// ServePatchGrocery handles PATCH /api/v1/users/{id}/grocery. The body
// replaces the whole embedded list; sections keyed by unknown
// ingredient types are rejected.
func (h *Handler) ServePatchGrocery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}

	var g models.Grocery
	if err := httpapi.Decode(r, &g); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	for section := range g.Sections {
		if !models.IsValidIngredientType(section) {
			h.ErrLog.BadRequest(w, r, "Unknown grocery section: "+section, nil)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetGrocery(ctx, id, g); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.ErrLog.NotFound(w, r, "User not found.")
			return
		}
		h.ErrLog.Internal(w, r, "users: set grocery", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, g)
}

// ServeOwnedRecipes handles GET /api/v1/users/{id}/recipes.
func (h *Handler) ServeOwnedRecipes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Recipes.ListByTenant(ctx, id)
	if err != nil {
		h.ErrLog.Internal(w, r, "users: list owned recipes", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeSavedRecipes handles GET /api/v1/users/{id}/saved-recipes,
// returning the bookmarked recipes in compact form. Bookmarks whose
// recipe has since been deleted are silently dropped.
func (h *Handler) ServeSavedRecipes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "users: load account", err)
		return
	}

	out, err := h.Recipes.GetBatch(ctx, u.SavedRecipeIDs, true)
	if err != nil {
		h.ErrLog.Internal(w, r, "users: batch saved recipes", err)
		return
	}
	if out == nil {
		out = []models.Recipe{}
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeSaveRecipe handles POST /api/v1/users/{id}/saved-recipes with a
// recipeId query parameter. Saving twice is a conflict.
func (h *Handler) ServeSaveRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}
	recipeID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("recipeId"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "A valid recipeId query parameter is required.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.Recipes.Exists(ctx, recipeID)
	if err != nil {
		h.ErrLog.Internal(w, r, "users: check recipe exists", err)
		return
	}
	if !exists {
		h.ErrLog.NotFound(w, r, "Recipe not found.")
		return
	}

	switch err := h.Users.AddSavedRecipe(ctx, id, recipeID); {
	case errors.Is(err, userstore.ErrAlreadySaved):
		h.ErrLog.Conflict(w, r, "Recipe is already saved.")
		return
	case errors.Is(err, userstore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "User not found.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "users: save recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeUnsaveRecipe handles DELETE /api/v1/users/{id}/saved-recipes.
func (h *Handler) ServeUnsaveRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}
	recipeID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("recipeId"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "A valid recipeId query parameter is required.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch err := h.Users.RemoveSavedRecipe(ctx, id, recipeID); {
	case errors.Is(err, userstore.ErrNotSaved):
		h.ErrLog.NotFound(w, r, "Recipe is not saved.")
		return
	case errors.Is(err, userstore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "User not found.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "users: unsave recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type replaceSavedRequest struct {
	RecipeIDs []string `json:"recipeIds"`
}

// ServeReplaceSaved handles PATCH /api/v1/users/{id}/saved-recipes,
// overwriting the bookmark list wholesale. Every id must refer to an
// existing recipe.
func (h *Handler) ServeReplaceSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}

	var req replaceSavedRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids := make([]primitive.ObjectID, 0, len(req.RecipeIDs))
	for _, raw := range req.RecipeIDs {
		rid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "Invalid recipe id: "+raw, err)
			return
		}
		exists, err := h.Recipes.Exists(ctx, rid)
		if err != nil {
			h.ErrLog.Internal(w, r, "users: check recipe exists", err)
			return
		}
		if !exists {
			h.ErrLog.NotFound(w, r, "Recipe not found: "+raw)
			return
		}
		ids = append(ids, rid)
	}

	if err := h.Users.ReplaceSavedRecipes(ctx, id, ids); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.ErrLog.NotFound(w, r, "User not found.")
			return
		}
		h.ErrLog.Internal(w, r, "users: replace saved recipes", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeIsSaved handles GET /api/v1/users/{id}/is-saved-recipe.
func (h *Handler) ServeIsSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceOwner(w, r)
	if !ok {
		return
	}
	recipeID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("recipeId"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "A valid recipeId query parameter is required.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Users.HasSavedRecipe(ctx, id, recipeID)
	if err != nil {
		h.ErrLog.Internal(w, r, "users: check saved recipe", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// ServeDetails handles GET /api/v1/users/details for the signed-in
// principal. There is no path id; the principal is the subject.
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, p.ID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "users: load details", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, u)
}
