package bootstrap

import (
	"testing"

	"github.com/potluckhq/potluck/internal/domain/models"
	"github.com/potluckhq/potluck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "admin@example.com", "longpw12", models.RoleUser)
	deps := DBDeps{PotluckMongoDatabase: db}

	if err := ensureAdmin(ctx, deps, "Admin@Example.com", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&got); err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestEnsureAdmin_AlreadyAdminIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Ada", "admin@example.com", "longpw12", models.RoleAdmin)
	deps := DBDeps{PotluckMongoDatabase: db}

	if err := ensureAdmin(ctx, deps, u.Email, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&got); err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestEnsureAdmin_UnregisteredEmailIsDeferred(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{PotluckMongoDatabase: db}

	// No account exists; startup must not fail and must not create one.
	if err := ensureAdmin(ctx, deps, "nobody@example.com", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("users created: got %d, want 0", n)
	}
}
