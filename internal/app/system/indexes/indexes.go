// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Options controls optional index behavior.
type Options struct {
	// PendingExpiry, when > 0, adds a TTL index on
	// pending_registrations.expires_at so stale signups are reaped by
	// the server. Zero leaves pending records in place indefinitely.
	PendingExpiry time.Duration
}

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast. The unique indexes on users.email and pending_registrations.email
are what make concurrent signup/confirm races safe; they are not
optional.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, opts Options, logger *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensurePendingRegistrations(ctx, db, opts.PendingExpiry); err != nil {
		problems = append(problems, "pending_registrations: "+err.Error())
	}
	if err := ensureRecipes(ctx, db); err != nil {
		problems = append(problems, "recipes: "+err.Error())
	}
	if err := ensureMealPlans(ctx, db); err != nil {
		problems = append(problems, "meal_plans: "+err.Error())
	}
	if err := ensureIngredients(ctx, db); err != nil {
		problems = append(problems, "ingredients: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	logger.Info("database indexes ensured")
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_name_ci"),
		},
	})
	return err
}

func ensurePendingRegistrations(ctx context.Context, db *mongo.Database, expiry time.Duration) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_pending_email_unique").SetUnique(true),
		},
	}
	if expiry > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_pending_expires_ttl").SetExpireAfterSeconds(0),
		})
	}
	_, err := db.Collection("pending_registrations").Indexes().CreateMany(ctx, models)
	return err
}

func ensureRecipes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("recipes").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}},
			Options: options.Index().SetName("idx_recipes_tenant"),
		},
		{
			Keys:    bson.D{{Key: "public", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_recipes_public_name"),
		},
	})
	return err
}

func ensureMealPlans(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("meal_plans").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_mealplans_tenant_date_unique").SetUnique(true),
		},
	})
	return err
}

func ensureIngredients(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("ingredients").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_ingredients_name_ci_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_ingredients_type"),
		},
	})
	return err
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_categories_name_ci_unique").SetUnique(true),
		},
	})
	return err
}
