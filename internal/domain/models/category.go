// internal/domain/models/category.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category types.
const (
	CategoryHealthyBased = "healthy_based"
	CategoryPriceBased   = "price_based"
)

// IsValidCategoryType reports whether t is a recognized category type.
func IsValidCategoryType(t string) bool {
	return t == CategoryHealthyBased || t == CategoryPriceBased
}

// Category is a lookup-table entry used to tag recipes.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Type        string             `bson:"type" json:"type"` // healthy_based | price_based
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
