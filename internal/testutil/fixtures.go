// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a confirmed account with the given password.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateRecipe creates a recipe owned by tenantID.
func (f *Fixtures) CreateRecipe(ctx context.Context, tenantID primitive.ObjectID, name string, public bool) models.Recipe {
	f.t.Helper()

	r := models.Recipe{
		ID:       primitive.NewObjectID(),
		TenantID: tenantID,
		Name:     name,
		NameCI:   text.Fold(name),
		Public:   public,
	}
	if _, err := f.db.Collection("recipes").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("create test recipe: %v", err)
	}
	return r
}

// CreateIngredient creates a lookup ingredient.
func (f *Fixtures) CreateIngredient(ctx context.Context, name, typ string) models.Ingredient {
	f.t.Helper()

	ing := models.Ingredient{
		ID:     primitive.NewObjectID(),
		Name:   name,
		NameCI: text.Fold(name),
		Type:   typ,
	}
	if _, err := f.db.Collection("ingredients").InsertOne(ctx, ing); err != nil {
		f.t.Fatalf("create test ingredient: %v", err)
	}
	return ing
}
