// internal/app/features/recipes/handler_test.go
package recipes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/potluckhq/potluck/internal/app/features/recipes"
	recipestore "github.com/potluckhq/potluck/internal/app/store/recipes"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	"github.com/potluckhq/potluck/internal/app/system/auth"
	"github.com/potluckhq/potluck/internal/domain/models"
	"github.com/potluckhq/potluck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*recipes.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := recipes.NewHandler(zap.NewNop(), recipestore.New(db), userstore.New(db))
	return h, db
}

func asPrincipal(r *http.Request, u models.User) *http.Request {
	return auth.WithTestPrincipal(r, &auth.Principal{ID: u.ID, Email: u.Email, Role: u.Role})
}

func TestServeCreate_OwnedByPrincipal(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)

	body := `{"name":"Shakshuka","public":true,"mealTypes":["BREAKFAST"],"relativePrice":"cheap"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", strings.NewReader(body))
	req = asPrincipal(req, u)
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created recipe: %v", err)
	}
	if created.TenantID != u.ID {
		t.Errorf("TenantID: got %v, want %v", created.TenantID, u.ID)
	}
	if len(created.MealTypes) != 1 || created.MealTypes[0] != models.MealBreakfast {
		t.Errorf("MealTypes not normalized: got %v", created.MealTypes)
	}

	// The recipe id lands on the owner's account.
	owner, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("load owner: %v", err)
	}
	if len(owner.RecipeIDs) != 1 || owner.RecipeIDs[0] != created.ID {
		t.Errorf("owner RecipeIDs: got %v", owner.RecipeIDs)
	}
}

func TestServeCreate_RejectsUnknownEnum(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)

	body := `{"name":"Mystery","mealTypes":["brunch"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", strings.NewReader(body))
	req = asPrincipal(req, u)
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown meal type: got %d, want 400", rec.Code)
	}
}

func TestServeGet_PrivateHiddenFromStrangers(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)
	other := fx.CreateUser(ctx, "Eve", "eve@example.com", "longpw12", models.RoleUser)
	private := fx.CreateRecipe(ctx, owner.ID, "Secret Pie", false)

	get := func(r *http.Request) int {
		rec := httptest.NewRecorder()
		h.ServeGet(rec, testutil.WithChiURLParam(r, "id", private.ID.Hex()))
		return rec.Code
	}

	// Anonymous and non-owner both get 404.
	if code := get(httptest.NewRequest(http.MethodGet, "/api/v1/recipes/x", nil)); code != http.StatusNotFound {
		t.Errorf("anonymous: got %d, want 404", code)
	}
	req := asPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/recipes/x", nil), other)
	if code := get(req); code != http.StatusNotFound {
		t.Errorf("stranger: got %d, want 404", code)
	}

	// The owner sees it.
	req = asPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/recipes/x", nil), owner)
	if code := get(req); code != http.StatusOK {
		t.Errorf("owner: got %d, want 200", code)
	}
}

func TestServePatch_NonOwnerForbidden(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)
	other := fx.CreateUser(ctx, "Eve", "eve@example.com", "longpw12", models.RoleUser)
	recipe := fx.CreateRecipe(ctx, owner.ID, "Carbonara", true)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/recipes/x", strings.NewReader(`{"public":false}`))
	req = asPrincipal(req, other)
	rec := httptest.NewRecorder()
	h.ServePatch(rec, testutil.WithChiURLParam(req, "id", recipe.ID.Hex()))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner patch: got %d, want 403", rec.Code)
	}
}

func TestServeBatch_FiltersPrivateRecipes(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)
	pub := fx.CreateRecipe(ctx, owner.ID, "Public Pie", true)
	priv := fx.CreateRecipe(ctx, owner.ID, "Secret Pie", false)

	body, _ := json.Marshal(map[string]any{
		"ids": []string{pub.ID.Hex(), priv.ID.Hex(), primitive.NewObjectID().Hex()},
	})

	// Anonymous caller only sees the public recipe.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/batch", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.ServeBatch(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("batch status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var got []models.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if len(got) != 1 || got[0].ID != pub.ID {
		t.Errorf("anonymous batch: got %+v", got)
	}

	// The owner sees both.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/recipes/batch", strings.NewReader(string(body)))
	req = asPrincipal(req, owner)
	rec = httptest.NewRecorder()
	h.ServeBatch(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("owner batch: got %d recipes, want 2", len(got))
	}
}

func TestServeDelete_RemovesOwnedRecipeID(t *testing.T) {
	h, db := setup(t)
	fx := testutil.NewFixtures(t, db)
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "ada@example.com", "longpw12", models.RoleUser)
	recipe := fx.CreateRecipe(ctx, u.ID, "Carbonara", true)
	if err := users.AddOwnedRecipe(ctx, u.ID, recipe.ID); err != nil {
		t.Fatalf("seed owned id: %v", err)
	}

	req := asPrincipal(httptest.NewRequest(http.MethodDelete, "/api/v1/recipes/x", nil), u)
	rec := httptest.NewRecorder()
	h.ServeDelete(rec, testutil.WithChiURLParam(req, "id", recipe.ID.Hex()))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d", rec.Code)
	}

	after, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if len(after.RecipeIDs) != 0 {
		t.Errorf("RecipeIDs after delete: got %v", after.RecipeIDs)
	}
}
