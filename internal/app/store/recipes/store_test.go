// internal/app/store/recipes/store_test.go
package recipestore_test

import (
	"errors"
	"testing"

	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	"github.com/potluckhq/potluck/internal/domain/models"
	"github.com/potluckhq/potluck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string    { return &s }
func boolPtr(b bool) *bool       { return &b }
func slicePtr(ss ...string) *[]string { return &ss }

func TestCreate_SanitizesAndFolds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenant := primitive.NewObjectID()
	r, err := store.Create(ctx, tenant, models.Recipe{
		Name:        "  Shakshuka <script>alert(1)</script> ",
		Description: "Eggs <b>poached</b> in tomato sauce",
		Public:      true,
		MealTypes:   []string{models.MealBreakfast},
		Steps:       []models.RecipeStep{{Position: 1, Description: "Simmer <i>the</i> sauce"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.TenantID != tenant {
		t.Errorf("TenantID: got %v, want %v", r.TenantID, tenant)
	}
	if r.Name != "Shakshuka" {
		t.Errorf("Name: got %q, want markup stripped", r.Name)
	}
	if r.NameCI != "shakshuka" {
		t.Errorf("NameCI: got %q, want %q", r.NameCI, "shakshuka")
	}
	if r.Description != "Eggs poached in tomato sauce" {
		t.Errorf("Description: got %q, want markup stripped", r.Description)
	}
	if r.Steps[0].Description != "Simmer the sauce" {
		t.Errorf("step description: got %q, want markup stripped", r.Steps[0].Description)
	}

	got, err := store.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != r.Name {
		t.Errorf("round trip Name: got %q, want %q", got.Name, r.Name)
	}
}

func TestListPublic_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenant := primitive.NewObjectID()
	mk := func(name string, public bool, meal, price string) {
		t.Helper()
		_, err := store.Create(ctx, tenant, models.Recipe{
			Name:          name,
			Public:        public,
			MealTypes:     []string{meal},
			RelativePrice: price,
		})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	mk("Pancakes", true, models.MealBreakfast, models.PriceCheap)
	mk("Risotto", true, models.MealDinner, models.PriceModerate)
	mk("Secret Pie", false, models.MealDinner, models.PriceCheap)

	all, err := store.ListPublic(ctx, recipestore.PublicFilter{})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("public recipes: got %d, want 2", len(all))
	}
	for _, r := range all {
		if r.Ingredients != nil || r.Steps != nil {
			t.Errorf("compact listing leaked heavy fields for %q", r.Name)
		}
	}

	// Filter casing from the query string is irrelevant.
	dinner, err := store.ListPublic(ctx, recipestore.PublicFilter{MealType: "DINNER"})
	if err != nil {
		t.Fatalf("ListPublic with filter failed: %v", err)
	}
	if len(dinner) != 1 || dinner[0].Name != "Risotto" {
		t.Errorf("dinner filter: got %+v", dinner)
	}
}

func TestGetBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenant := primitive.NewObjectID()
	a := fx.CreateRecipe(ctx, tenant, "Alpha", true)
	b := fx.CreateRecipe(ctx, tenant, "Beta", false)
	missing := primitive.NewObjectID()

	got, err := store.GetBatch(ctx, []primitive.ObjectID{a.ID, b.ID, missing}, false)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("batch size: got %d, want 2 (missing ids skipped)", len(got))
	}

	got, err = store.GetBatch(ctx, nil, false)
	if err != nil {
		t.Fatalf("empty GetBatch failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty batch: got %d recipes", len(got))
	}
}

func TestApplyPatch_OnlyTouchesProvidedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenant := primitive.NewObjectID()
	r, err := store.Create(ctx, tenant, models.Recipe{
		Name:        "Carbonara",
		Description: "Roman pasta",
		Public:      false,
		MealTypes:   []string{models.MealDinner},
		Steps:       []models.RecipeStep{{Position: 1, Description: "Boil pasta"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ApplyPatch(ctx, tenant, r.ID, recipestore.Patch{
		Public:    boolPtr(true),
		MealTypes: slicePtr(models.MealLunch, models.MealDinner),
	})
	if err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}

	if !got.Public {
		t.Error("Public: expected true")
	}
	if len(got.MealTypes) != 2 {
		t.Errorf("MealTypes: got %v", got.MealTypes)
	}
	// Untouched fields survive.
	if got.Name != "Carbonara" {
		t.Errorf("Name changed: got %q", got.Name)
	}
	if got.Description != "Roman pasta" {
		t.Errorf("Description changed: got %q", got.Description)
	}
	if len(got.Steps) != 1 || got.Steps[0].Description != "Boil pasta" {
		t.Errorf("Steps changed: got %+v", got.Steps)
	}
}

func TestApplyPatch_RenameRefoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenant := primitive.NewObjectID()
	r, err := store.Create(ctx, tenant, models.Recipe{Name: "Old Name"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ApplyPatch(ctx, tenant, r.ID, recipestore.Patch{Name: strPtr("  New Name ")})
	if err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", got.Name, "New Name")
	}
	if got.NameCI != "new name" {
		t.Errorf("NameCI: got %q, want %q", got.NameCI, "new name")
	}
}

func TestApplyPatch_TenantMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	r, err := store.Create(ctx, owner, models.Recipe{Name: "Mine"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = store.ApplyPatch(ctx, primitive.NewObjectID(), r.ID, recipestore.Patch{Public: boolPtr(true)})
	if !errors.Is(err, recipestore.ErrNotOwner) {
		t.Fatalf("other tenant patch: got %v, want ErrNotOwner", err)
	}

	_, err = store.ApplyPatch(ctx, owner, primitive.NewObjectID(), recipestore.Patch{Public: boolPtr(true)})
	if !errors.Is(err, recipestore.ErrNotFound) {
		t.Fatalf("missing recipe patch: got %v, want ErrNotFound", err)
	}
}

func TestDelete_OwnershipChecks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recipestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	r, err := store.Create(ctx, owner, models.Recipe{Name: "Mine"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, primitive.NewObjectID(), r.ID); !errors.Is(err, recipestore.ErrNotOwner) {
		t.Fatalf("other tenant delete: got %v, want ErrNotOwner", err)
	}
	if err := store.Delete(ctx, owner, r.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := store.Delete(ctx, owner, r.ID); !errors.Is(err, recipestore.ErrNotFound) {
		t.Fatalf("repeat delete: got %v, want ErrNotFound", err)
	}
}
