// internal/domain/models/grocery.go
package models

// GroceryItem is one line on a grocery list.
type GroceryItem struct {
	Name   string `bson:"name" json:"name"`
	Amount Amount `bson:"amount" json:"amount"`
	Bought bool   `bson:"bought" json:"bought"`
}

// Grocery is the per-user shopping list, embedded on the user document
// and sectioned by ingredient type.
type Grocery struct {
	Sections map[string][]GroceryItem `bson:"sections,omitempty" json:"sections,omitempty"`
}
