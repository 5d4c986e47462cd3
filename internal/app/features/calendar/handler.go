// internal/app/features/calendar/handler.go

// Package calendar implements the meal-planning endpoints. A calendar
// day belongs to one tenant; the path tenant id must match the
// signed-in principal (admins may act on any tenant).
package calendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	calendarstore "github.com/potluckhq/potluck/internal/app/store/calendar"
	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	"github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/app/system/httpapi"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/timeouts"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

type Handler struct {
	Log      *zap.Logger
	ErrLog   *httpapi.ErrorLogger
	Calendar *calendarstore.Store
	Recipes  *recipestore.Store
}

func NewHandler(logger *zap.Logger, cal *calendarstore.Store, recipes *recipestore.Store) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   httpapi.NewErrorLogger(logger),
		Calendar: cal,
		Recipes:  recipes,
	}
}

func (h *Handler) tenant(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	p, ok := auth.Current(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r, "Sign in required.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid tenant id.", err)
		return primitive.NilObjectID, false
	}
	if id != p.ID && !p.IsAdmin() {
		h.ErrLog.Forbidden(w, r, "You cannot access another user's calendar.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeGetDay handles GET /api/v1/users/{id}/calendar/{date}.
func (h *Handler) ServeGetDay(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenant(w, r)
	if !ok {
		return
	}
	date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Date must be formatted YYYY-MM-DD.", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	day, err := h.Calendar.GetDay(ctx, tenantID, date)
	if errors.Is(err, calendarstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "No calendar entry for this date.")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "calendar: get day", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, day)
}

type calendarRequest struct {
	Date       string             `json:"date"`
	MealEvents []models.MealEvent `json:"mealEvents"`
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (time.Time, []models.MealEvent, bool) {
	var req calendarRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.ErrLog.BadRequest(w, r, "Invalid request body.", err)
		return time.Time{}, nil, false
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "Date must be formatted YYYY-MM-DD.", err)
		return time.Time{}, nil, false
	}
	if len(req.MealEvents) == 0 {
		h.ErrLog.BadRequest(w, r, "At least one meal event is required.", nil)
		return time.Time{}, nil, false
	}
	return date, req.MealEvents, true
}

// validateEvents checks each event: known meal type, referenced recipe
// exists, and either a recipe id or an event name is present.
func (h *Handler) validateEvents(ctx context.Context, events []models.MealEvent) error {
	for _, ev := range events {
		if !models.IsValidMealType(normalize.MealType(ev.MealType)) {
			return errors.New("unknown meal type: " + ev.MealType)
		}
		if ev.RecipeID == nil && ev.EventName == "" {
			return errors.New("each meal event needs a recipeId or an eventName")
		}
		if ev.RecipeID != nil {
			exists, err := h.Recipes.Exists(ctx, *ev.RecipeID)
			if err != nil {
				return err
			}
			if !exists {
				return errors.New("recipe not found: " + ev.RecipeID.Hex())
			}
		}
	}
	return nil
}

// ServeMerge handles PUT /api/v1/users/{id}/calendar. An incoming
// event replaces the stored event with the same meal type for that
// date; other stored events are kept.
func (h *Handler) ServeMerge(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenant(w, r)
	if !ok {
		return
	}
	date, events, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.validateEvents(ctx, events); err != nil {
		h.ErrLog.BadRequest(w, r, err.Error(), nil)
		return
	}

	day, err := h.Calendar.MergeMealEvents(ctx, tenantID, date, events)
	if err != nil {
		h.ErrLog.Internal(w, r, "calendar: merge meal events", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, day)
}

// ServeDelete handles DELETE /api/v1/users/{id}/calendar,
// removing stored events that match the request by meal type and
// recipe id or event name.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenant(w, r)
	if !ok {
		return
	}
	date, events, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Calendar.DeleteMealEvents(ctx, tenantID, date, events)
	switch {
	case errors.Is(err, calendarstore.ErrNotFound):
		h.ErrLog.NotFound(w, r, "No calendar entry for this date.")
		return
	case errors.Is(err, calendarstore.ErrNoMatch):
		h.ErrLog.NotFound(w, r, "No matching meal events to delete.")
		return
	case err != nil:
		h.ErrLog.Internal(w, r, "calendar: delete meal events", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
