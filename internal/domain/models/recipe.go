// internal/domain/models/recipe.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal types for recipes and calendar events.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// IsValidMealType reports whether mt is a recognized meal type.
func IsValidMealType(mt string) bool {
	return mt == MealBreakfast || mt == MealLunch || mt == MealDinner
}

// Relative price bands for recipes.
const (
	PriceCheap     = "cheap"
	PriceModerate  = "moderate"
	PriceExpensive = "expensive"
)

// IsValidRelativePrice reports whether p is a recognized price band.
func IsValidRelativePrice(p string) bool {
	return p == PriceCheap || p == PriceModerate || p == PriceExpensive
}

// Amount is a quantity with a unit, e.g. {2, "cups"} or {45, "min"}.
type Amount struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

// RecipeIngredient references a lookup ingredient with a quantity.
type RecipeIngredient struct {
	IngredientID primitive.ObjectID `bson:"ingredient_id" json:"ingredientId"`
	Amount       Amount             `bson:"amount" json:"amount"`
}

// RecipeStep is one ordered instruction in a recipe.
type RecipeStep struct {
	Position    int    `bson:"position" json:"position"`
	Description string `bson:"description" json:"description"`
}

// Recipe is owned by exactly one tenant (the user id in TenantID).
// Public recipes are browsable by anyone; private ones only by the owner.
type Recipe struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID primitive.ObjectID `bson:"tenant_id" json:"tenantId"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Public      bool   `bson:"public" json:"public"`

	MealTypes     []string `bson:"meal_types,omitempty" json:"mealTypes,omitempty"`
	FoodOrigins   []string `bson:"food_origins,omitempty" json:"foodOrigins,omitempty"`
	RelativePrice string   `bson:"relative_price,omitempty" json:"relativePrice,omitempty"`

	Duration    *Amount              `bson:"duration,omitempty" json:"duration,omitempty"`
	CategoryIDs []primitive.ObjectID `bson:"category_ids,omitempty" json:"categoryIds,omitempty"`
	Ingredients []RecipeIngredient   `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Steps       []RecipeStep         `bson:"steps,omitempty" json:"steps,omitempty"`
}
