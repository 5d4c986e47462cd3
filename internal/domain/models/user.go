// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a confirmed account. Email is the login identifier and is
// unique across the users collection (enforced by index).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // user | admin

	// RecipeIDs lists recipes the user owns; SavedRecipeIDs lists
	// recipes the user bookmarked (may belong to other tenants).
	RecipeIDs      []primitive.ObjectID `bson:"recipe_ids,omitempty" json:"recipeIds,omitempty"`
	SavedRecipeIDs []primitive.ObjectID `bson:"saved_recipe_ids,omitempty" json:"savedRecipeIds,omitempty"`

	Grocery *Grocery `bson:"grocery,omitempty" json:"grocery,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidRole reports whether role is one of the assignable roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
