// internal/app/store/calendar/store.go

// Package calendarstore manages the per-tenant meal-plan collection.
// Each document holds all meal events for one (tenant, date) pair.
package calendarstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a tenant has no calendar entry for
	// the requested date.
	ErrNotFound = errors.New("calendar day not found")
	// ErrNoMatch is returned when a delete request matches none of the
	// stored meal events.
	ErrNoMatch = errors.New("no matching meal events")
)

// Store manages the meal_plans collection.
type Store struct {
	c *mongo.Collection
}

// New creates a Store over the meal_plans collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meal_plans")}
}

// Day truncates t to UTC midnight, the canonical stored form.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetDay loads the calendar entry for one date.
func (s *Store) GetDay(ctx context.Context, tenantID primitive.ObjectID, date time.Time) (*models.CalendarDay, error) {
	var day models.CalendarDay
	err := s.c.FindOne(ctx, bson.M{"tenant_id": tenantID, "date": Day(date)}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// MergeMealEvents folds events into the tenant's entry for date,
// creating it if absent. An incoming event replaces the stored event
// with the same meal type; other stored events are kept. Existing
// order is preserved and new meal types append in request order.
func (s *Store) MergeMealEvents(ctx context.Context, tenantID primitive.ObjectID, date time.Time, events []models.MealEvent) (*models.CalendarDay, error) {
	date = Day(date)
	for i := range events {
		events[i].MealType = normalize.MealType(events[i].MealType)
	}

	day, err := s.GetDay(ctx, tenantID, date)
	if errors.Is(err, ErrNotFound) {
		day = &models.CalendarDay{
			ID:       primitive.NewObjectID(),
			TenantID: tenantID,
			Date:     date,
		}
	} else if err != nil {
		return nil, err
	}

	day.MealEvents = mergeByMealType(day.MealEvents, events)

	_, err = s.c.ReplaceOne(ctx,
		bson.M{"tenant_id": tenantID, "date": date},
		day,
		options.Replace().SetUpsert(true),
	)
	if wafflemongo.IsDup(err) {
		// Lost a create race on the (tenant_id, date) unique index.
		// The entry exists now, so merge once more against it.
		return s.mergeExisting(ctx, tenantID, date, events)
	}
	if err != nil {
		return nil, err
	}
	return day, nil
}

// mergeExisting re-runs the merge against an entry that is known to
// exist. No upsert, so there is no second race to lose.
func (s *Store) mergeExisting(ctx context.Context, tenantID primitive.ObjectID, date time.Time, events []models.MealEvent) (*models.CalendarDay, error) {
	day, err := s.GetDay(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	day.MealEvents = mergeByMealType(day.MealEvents, events)
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": day.ID}, day); err != nil {
		return nil, err
	}
	return day, nil
}

func mergeByMealType(existing, incoming []models.MealEvent) []models.MealEvent {
	merged := make([]models.MealEvent, 0, len(existing)+len(incoming))
	replaced := make(map[string]bool, len(incoming))
	for _, ev := range incoming {
		replaced[ev.MealType] = true
	}
	for _, ev := range existing {
		if !replaced[ev.MealType] {
			merged = append(merged, ev)
		}
	}
	return append(merged, incoming...)
}

// DeleteMealEvents removes stored events that match any requested
// event: same meal type, and either the same recipe id or the same
// event name (case-insensitive). Returns ErrNotFound when the day has
// no entry or no events, and ErrNoMatch when nothing matched.
func (s *Store) DeleteMealEvents(ctx context.Context, tenantID primitive.ObjectID, date time.Time, toDelete []models.MealEvent) (*models.CalendarDay, error) {
	day, err := s.GetDay(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	if len(day.MealEvents) == 0 {
		return nil, ErrNotFound
	}

	kept := day.MealEvents[:0:0]
	for _, ev := range day.MealEvents {
		if !matchesAny(ev, toDelete) {
			kept = append(kept, ev)
		}
	}
	if len(kept) == len(day.MealEvents) {
		return nil, ErrNoMatch
	}
	day.MealEvents = kept

	if _, err := s.c.UpdateOne(ctx,
		bson.M{"_id": day.ID},
		bson.M{"$set": bson.M{"meal_events": kept}},
	); err != nil {
		return nil, err
	}
	return day, nil
}

func matchesAny(stored models.MealEvent, requested []models.MealEvent) bool {
	for _, req := range requested {
		if !strings.EqualFold(stored.MealType, req.MealType) {
			continue
		}
		if req.RecipeID != nil && stored.RecipeID != nil && *req.RecipeID == *stored.RecipeID {
			return true
		}
		if req.EventName != "" && strings.EqualFold(req.EventName, stored.EventName) {
			return true
		}
	}
	return false
}
