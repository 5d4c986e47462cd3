// internal/app/features/recipes/handler.go

// Package recipes implements recipe browsing and tenant-scoped CRUD.
// Public recipes are readable by anyone; private recipes and all
// mutations belong to the owning tenant.
package recipes

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	"github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxBatchIDs = 200

type Handler struct {
	Log     *zap.Logger
	ErrLog  *httpapi.ErrorLogger
	Recipes *recipestore.Store
	Users   *userstore.Store
}

func NewHandler(logger *zap.Logger, recipes *recipestore.Store, users *userstore.Store) *Handler {
	return &Handler{
		Log:     logger,
		ErrLog:  httpapi.NewErrorLogger(logger),
		Recipes: recipes,
		Users:   users,
	}
}

// ServeList handles GET /api/v1/recipes: all public recipes, compact.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Recipes.ListPublic(ctx, recipestore.PublicFilter{})
	if err != nil {
		h.ErrLog.Internal(w, r, "recipes: list public", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeFiltered handles GET /api/v1/recipes/filters with optional
// relativePrice, foodOrigin, mealType and limit query parameters.
// Unknown filter values simply match nothing rather than erroring, so
// clients can pass values through verbatim.
func (h *Handler) ServeFiltered(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := recipestore.PublicFilter{
		MealType:      q.Get("mealType"),
		FoodOrigin:    q.Get("foodOrigin"),
		RelativePrice: q.Get("relativePrice"),
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			h.ErrLog.BadRequest(w, r, "limit must be a non-negative integer.", err)
			return
		}
		filter.Limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Recipes.ListPublic(ctx, filter)
	if err != nil {
		h.ErrLog.Internal(w, r, "recipes: list filtered", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/v1/recipes/{id}. Private recipes are only
// visible to their owner; everyone else gets the same 404 a missing
// recipe would produce.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid recipe id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	recipe, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, recipestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "Recipe not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "recipes: get by id", err)
		return
	}

	if !recipe.Public {
		p, ok := auth.Current(r)
		if !ok || p.ID != recipe.TenantID {
			h.ErrLog.NotFound(w, r, "Recipe not found.")
			return
		}
	}
	httpapi.WriteJSON(w, http.StatusOK, recipe)
}

type batchRequest struct {
	IDs     []string `json:"ids"`
	Compact bool     `json:"compact"`
}

// ServeBatch handles POST /api/v1/recipes/batch. Ids that don't exist
// are skipped; private recipes of other tenants are filtered out of the
// result.
func (h *Handler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if len(req.IDs) > maxBatchIDs {
		h.ErrLog.BadRequest(w, r, "Too many recipe ids in one batch.", nil)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "Invalid recipe id: "+raw, err)
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recipes, err := h.Recipes.GetBatch(ctx, ids, req.Compact)
	if err != nil {
		h.ErrLog.Internal(w, r, "recipes: batch get", err)
		return
	}

	p, _ := auth.Current(r)
	visible := make([]models.Recipe, 0, len(recipes))
	for _, rec := range recipes {
		if rec.Public || (p != nil && p.ID == rec.TenantID) {
			visible = append(visible, rec)
		}
	}
	httpapi.WriteJSON(w, http.StatusOK, visible)
}

// ServeCreate handles POST /api/v1/recipes. The recipe is owned by the
// signed-in principal and its id is added to the account's owned list.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return
	}

	var req models.Recipe
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if err := validateEnums(req); err != nil {
		h.ErrLog.BadRequest(w, r, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Recipes.Create(ctx, p.ID, req)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Could not create recipe.", err)
		return
	}

	if err := h.Users.AddOwnedRecipe(ctx, p.ID, created.ID); err != nil {
		h.Log.Error("recipes: add owned recipe id", zap.String("user", p.ID.Hex()), zap.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServePatch handles PATCH /api/v1/recipes/{id}: explicit per-field
// merge, only fields present in the body are touched.
func (h *Handler) ServePatch(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid recipe id.", err)
		return
	}

	var patch recipestore.Patch
	if err := httpapi.Decode(r, &patch); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if err := validatePatchEnums(patch); err != nil {
		h.ErrLog.BadRequest(w, r, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Recipes.ApplyPatch(ctx, p.ID, id, patch)
	switch {
	case errors.Is(err, recipestore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "Recipe not found.")
		return
	case errors.Is(err, recipestore.ErrNotOwner):
		h.ErrLog.Forbidden(w, r, "You do not own this recipe.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "recipes: apply patch", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/v1/recipes/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid recipe id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Recipes.Delete(ctx, p.ID, id)
	switch {
	case errors.Is(err, recipestore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "Recipe not found.")
		return
	case errors.Is(err, recipestore.ErrNotOwner):
		h.ErrLog.Forbidden(w, r, "You do not own this recipe.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "recipes: delete", err)
		return
	}

	if err := h.Users.RemoveOwnedRecipe(ctx, p.ID, id); err != nil {
		h.Log.Error("recipes: remove owned recipe id", zap.String("user", p.ID.Hex()), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateEnums(r models.Recipe) error {
	for _, mt := range r.MealTypes {
		if !models.IsValidMealType(normalize.Enum(mt)) {
			return errors.New("unknown meal type: " + mt)
		}
	}
	if rp := normalize.Enum(r.RelativePrice); rp != "" && !models.IsValidRelativePrice(rp) {
		return errors.New("unknown relative price: " + r.RelativePrice)
	}
	return nil
}

func validatePatchEnums(p recipestore.Patch) error {
	if p.MealTypes != nil {
		for _, mt := range *p.MealTypes {
			if !models.IsValidMealType(normalize.Enum(mt)) {
				return errors.New("unknown meal type: " + mt)
			}
		}
	}
	if p.RelativePrice != nil {
		if rp := normalize.Enum(*p.RelativePrice); rp != "" && !models.IsValidRelativePrice(rp) {
			return errors.New("unknown relative price: " + *p.RelativePrice)
		}
	}
	return nil
}
