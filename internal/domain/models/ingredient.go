// internal/domain/models/ingredient.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingredient types, used for grocery-list sectioning and filtering.
const (
	IngredientFruit     = "fruit"
	IngredientVegetable = "vegetable"
	IngredientFish      = "fish"
	IngredientMeat      = "meat"
	IngredientCarb      = "carb"
	IngredientSpice     = "spice"
	IngredientDairy     = "dairy"
	IngredientLegume    = "legume"
	IngredientNut       = "nut"
	IngredientHerb      = "herb"
	IngredientCondiment = "condiment"
	IngredientSweetener = "sweetener"
	IngredientOil       = "oil"
	IngredientBeverage  = "beverage"
)

var ingredientTypes = map[string]struct{}{
	IngredientFruit: {}, IngredientVegetable: {}, IngredientFish: {},
	IngredientMeat: {}, IngredientCarb: {}, IngredientSpice: {},
	IngredientDairy: {}, IngredientLegume: {}, IngredientNut: {},
	IngredientHerb: {}, IngredientCondiment: {}, IngredientSweetener: {},
	IngredientOil: {}, IngredientBeverage: {},
}

// IsValidIngredientType reports whether t is a recognized ingredient type.
func IsValidIngredientType(t string) bool {
	_, ok := ingredientTypes[t]
	return ok
}

// Ingredient is a lookup-table entry shared by all tenants.
type Ingredient struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Type     string             `bson:"type" json:"type"`
	ImageURL string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}
