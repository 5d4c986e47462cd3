// internal/app/features/categories/handler.go

// Package categories serves the shared recipe category catalog. Like
// ingredients, reads are open and mutations are admin-only.
package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	categorystore "github.com/potluckhq/potluck/internal/app/store/categories"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	ErrLog     *httpapi.ErrorLogger
	Categories *categorystore.Store
}

func NewHandler(logger *zap.Logger, categories *categorystore.Store) *Handler {
	return &Handler{
		Log:        logger,
		ErrLog:     httpapi.NewErrorLogger(logger),
		Categories: categories,
	}
}

// ServeList handles GET /api/v1/categories, sorted by folded name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Categories.List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "categories: list", err)
		return
	}
	if out == nil {
		out = []models.Category{}
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// ServeGet handles GET /api/v1/categories/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid category id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if errors.Is(err, categorystore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "Category not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "categories: get by id", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, cat)
}

type createRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ServeCreate handles POST /api/v1/categories (admin only).
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return
	}
	if normalize.Name(req.Name) == "" {
		h.ErrLog.BadRequest(w, r, "Category name is required.", nil)
		return
	}
	if !models.IsValidCategoryType(normalize.Enum(req.Type)) {
		h.ErrLog.BadRequest(w, r, "Unknown category type: "+req.Type, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Categories.Create(ctx, models.Category{Name: req.Name, Type: req.Type, Description: req.Description})
	if errors.Is(err, categorystore.ErrDuplicateName) {
		h.ErrLog.Conflict(w, r, "A category with that name already exists.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "categories: create", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServeDelete handles DELETE /api/v1/categories/{id} (admin only).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid category id.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Categories.Delete(ctx, id)
	if errors.Is(err, categorystore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "Category not found.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "categories: delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
