// internal/app/store/users/userstore_test.go
package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	"github.com/potluckhq/potluck/internal/app/system/indexes"
	"github.com/potluckhq/potluck/internal/domain/models"
	"github.com/potluckhq/potluck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate_NormalizesAndFolds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		Name:         "  Ada Lovelace ",
		Email:        " Ada@Example.COM ",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want %q", u.Email, "ada@example.com")
	}
	if u.Name != "Ada Lovelace" {
		t.Errorf("Name: got %q, want %q", u.Name, "Ada Lovelace")
	}
	if u.NameCI != "ada lovelace" {
		t.Errorf("NameCI: got %q, want %q", u.NameCI, "ada lovelace")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetByEmail ID: got %v, want %v", got.ID, u.ID)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Duplicate detection rides on the unique email index.
	if err := indexes.EnsureAll(ctx, db, indexes.Options{}, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	if _, err := store.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h", Role: models.RoleUser}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Name: "Other", Email: "Ada@Example.com", PasswordHash: "h2", Role: models.RoleUser})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("duplicate Create: got %v, want ErrDuplicateEmail", err)
	}
}

func TestResolvePrincipal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "secret", models.RoleAdmin)

	p, err := store.ResolvePrincipal(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("ResolvePrincipal failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected a principal")
	}
	if p.ID != u.ID || p.Email != u.Email || p.Role != models.RoleAdmin {
		t.Errorf("principal: got %+v", p)
	}

	// Unknown accounts resolve to nil without error.
	p, err = store.ResolvePrincipal(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("ResolvePrincipal unknown failed: %v", err)
	}
	if p != nil {
		t.Errorf("unknown principal: got %+v, want nil", p)
	}
}

func TestSavedRecipes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "secret", models.RoleUser)
	recipeID := primitive.NewObjectID()

	if err := store.AddSavedRecipe(ctx, u.ID, recipeID); err != nil {
		t.Fatalf("AddSavedRecipe failed: %v", err)
	}
	if err := store.AddSavedRecipe(ctx, u.ID, recipeID); !errors.Is(err, userstore.ErrAlreadySaved) {
		t.Fatalf("second AddSavedRecipe: got %v, want ErrAlreadySaved", err)
	}

	has, err := store.HasSavedRecipe(ctx, u.ID, recipeID)
	if err != nil {
		t.Fatalf("HasSavedRecipe failed: %v", err)
	}
	if !has {
		t.Error("expected recipe to be saved")
	}

	if err := store.RemoveSavedRecipe(ctx, u.ID, recipeID); err != nil {
		t.Fatalf("RemoveSavedRecipe failed: %v", err)
	}
	if err := store.RemoveSavedRecipe(ctx, u.ID, recipeID); !errors.Is(err, userstore.ErrNotSaved) {
		t.Fatalf("second RemoveSavedRecipe: got %v, want ErrNotSaved", err)
	}
}

func TestOwnedRecipes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "secret", models.RoleUser)
	recipeID := primitive.NewObjectID()

	if err := store.AddOwnedRecipe(ctx, u.ID, recipeID); err != nil {
		t.Fatalf("AddOwnedRecipe failed: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.RecipeIDs) != 1 || got.RecipeIDs[0] != recipeID {
		t.Errorf("RecipeIDs: got %v, want [%v]", got.RecipeIDs, recipeID)
	}

	if err := store.RemoveOwnedRecipe(ctx, u.ID, recipeID); err != nil {
		t.Fatalf("RemoveOwnedRecipe failed: %v", err)
	}
	if err := store.AddOwnedRecipe(ctx, primitive.NewObjectID(), recipeID); !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("AddOwnedRecipe unknown user: got %v, want ErrNotFound", err)
	}
}

func TestGrocery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "secret", models.RoleUser)

	// No grocery list yet.
	g, err := store.GetGrocery(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetGrocery failed: %v", err)
	}
	if g != nil {
		t.Errorf("fresh account grocery: got %+v, want nil", g)
	}

	want := models.Grocery{Sections: map[string][]models.GroceryItem{
		"fruit": {{Name: "Apples", Amount: models.Amount{Value: 6, Unit: "pcs"}}},
	}}
	if err := store.SetGrocery(ctx, u.ID, want); err != nil {
		t.Fatalf("SetGrocery failed: %v", err)
	}

	g, err = store.GetGrocery(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetGrocery after set failed: %v", err)
	}
	if g == nil || len(g.Sections["fruit"]) != 1 || g.Sections["fruit"][0].Name != "Apples" {
		t.Errorf("grocery round trip: got %+v", g)
	}
}
