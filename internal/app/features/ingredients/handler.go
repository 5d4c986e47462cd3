// internal/app/features/ingredients/handler.go

// Package ingredients serves the shared ingredient lookup catalog.
// Reads are open to everyone; mutations are admin-only because the
// catalog is shared across all tenants.
package ingredients

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	ingredientstore "github.com/potluckhq/potluck/internal/app/store/ingredients"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log         *zap.Logger
	ErrLog      *httpapi.ErrorLogger
	Ingredients *ingredientstore.Store
}

func NewHandler(logger *zap.Logger, ingredients *ingredientstore.Store) *Handler {
	return &Handler{
		Log:         logger,
		ErrLog:      httpapi.NewErrorLogger(logger),
		Ingredients: ingredients,
	}
}

// ServeList handles GET /api/v1/ingredients with an optional type query
// parameter, sorted by folded name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	typ := normalize.Enum(r.URL.Query().Get("type"))
	if typ != "" && !models.IsValidIngredientType(typ) {
		h.ErrLog.BadRequest(w, r, "Unknown ingredient type: "+typ, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Ingredients.List(ctx, typ)
	if err != nil {
		h.ErrLog.Internal(w, r, "ingredients: list", err)
		return
	}
	if out == nil {
		out = []models.Ingredient{}
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/v1/ingredients/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid ingredient id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ing, err := h.Ingredients.GetByID(ctx, id)
	if errors.Is(err, ingredientstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "Ingredient not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "ingredients: get by id", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ing)
}

type createRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
}

// ServeCreate handles POST /api/v1/ingredients (admin only).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if normalize.Name(req.Name) == "" {
		h.ErrLog.BadRequest(w, r, "Ingredient name is required.", nil)
		return
	}
	if !models.IsValidIngredientType(normalize.Enum(req.Type)) {
		h.ErrLog.BadRequest(w, r, "Unknown ingredient type: "+req.Type, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Ingredients.Create(ctx, models.Ingredient{Name: req.Name, Type: req.Type, ImageURL: req.ImageURL})
	if errors.Is(err, ingredientstore.ErrDuplicateName) {
		h.ErrLog.Conflict(w, r, "An ingredient with that name already exists.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "ingredients: create", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServeDelete handles DELETE /api/v1/ingredients/{id} (admin only).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid ingredient id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Ingredients.Delete(ctx, id)
	if errors.Is(err, ingredientstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "Ingredient not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "ingredients: delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
