// internal/app/store/ingredients/store_test.go
package ingredientstore_test

import (
	"errors"
	"testing"

	ingredientstore "github.com/potluckhq/potluck/internal/app/store/ingredients"
	"github.com/potluckhq/potluck/internal/app/system/indexes"
	"github.com/potluckhq/potluck/internal/domain/models"
	"github.com/potluckhq/potluck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ingredientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Ingredient{Name: "Tomato", Type: "VEGETABLE"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Ingredient{Name: "Apple", Type: models.IngredientFruit}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List: got %d, want 2", len(all))
	}
	// Sorted by folded name.
	if all[0].Name != "Apple" || all[1].Name != "Tomato" {
		t.Errorf("sort order: got %q, %q", all[0].Name, all[1].Name)
	}
	// Type enum normalized on the way in.
	if all[1].Type != models.IngredientVegetable {
		t.Errorf("Type: got %q, want %q", all[1].Type, models.IngredientVegetable)
	}

	veg, err := store.List(ctx, "vegetable")
	if err != nil {
		t.Fatalf("List by type failed: %v", err)
	}
	if len(veg) != 1 || veg[0].Name != "Tomato" {
		t.Errorf("type filter: got %+v", veg)
	}

	if _, err := store.List(ctx, "plastic"); err == nil {
		t.Error("expected error for unknown ingredient type")
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ingredientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Ingredient{Name: "  ", Type: models.IngredientFruit}); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := store.Create(ctx, models.Ingredient{Name: "Gravel", Type: "mineral"}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ingredientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, indexes.Options{}, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	if _, err := store.Create(ctx, models.Ingredient{Name: "Basil", Type: models.IngredientHerb}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Ingredient{Name: "BASIL", Type: models.IngredientHerb}); !errors.Is(err, ingredientstore.ErrDuplicateName) {
		t.Fatalf("duplicate: got %v, want ErrDuplicateName", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ingredientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ing, err := store.Create(ctx, models.Ingredient{Name: "Basil", Type: models.IngredientHerb})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, ing.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, ingredientstore.ErrNotFound) {
		t.Fatalf("missing delete: got %v, want ErrNotFound", err)
	}
}
