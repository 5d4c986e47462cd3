// internal/domain/models/calendar.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealEvent is one planned meal on a calendar day. Either RecipeID
// points at a stored recipe, or EventName carries a free-form label.
type MealEvent struct {
	MealType  string              `bson:"meal_type" json:"mealType"` // breakfast | lunch | dinner
	EventName string              `bson:"event_name,omitempty" json:"eventName,omitempty"`
	RecipeID  *primitive.ObjectID `bson:"recipe_id,omitempty" json:"recipeId,omitempty"`
}

// CalendarDay holds all meal events a tenant planned for one date.
// The (tenant_id, date) pair is unique; dates are stored at UTC midnight.
type CalendarDay struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID primitive.ObjectID `bson:"tenant_id" json:"-"`
	Date     time.Time          `bson:"date" json:"date"`

	MealEvents []MealEvent `bson:"meal_events,omitempty" json:"mealEvents,omitempty"`
}
