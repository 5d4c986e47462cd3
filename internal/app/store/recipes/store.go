// internal/app/store/recipes/store.go
package recipestore

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/sanitize"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no recipe matches the lookup.
	ErrNotFound = errors.New("recipe not found")
	// ErrNotOwner is returned when a tenant tries to mutate a recipe it
	// does not own.
	ErrNotOwner = errors.New("recipe belongs to a different tenant")
	errBadName  = errors.New("recipe name is required")
)

// compactProjection drops the heavy fields for list endpoints.
var compactProjection = bson.M{
	"ingredients": 0,
	"steps":       0,
}

// Store manages the recipes collection.
type Store struct {
	c *mongo.Collection
}

// New creates a Store over the recipes collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("recipes")}
}

// GetByID loads a recipe.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var r models.Recipe
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Exists reports whether a recipe with the given id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	cnt, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return cnt > 0, err
}

// PublicFilter narrows the public-recipe listing. Zero values mean
// "don't filter". Enum values are normalized before matching, so any
// casing from the query string works.
type PublicFilter struct {
	MealType      string
	FoodOrigin    string
	RelativePrice string
	Limit         int64
}

// ListPublic returns compact public recipes, optionally filtered.
func (s *Store) ListPublic(ctx context.Context, f PublicFilter) ([]models.Recipe, error) {
	q := bson.M{"public": true}
	if mt := normalize.Enum(f.MealType); mt != "" {
		q["meal_types"] = mt
	}
	if fo := normalize.Enum(f.FoodOrigin); fo != "" {
		q["food_origins"] = fo
	}
	if rp := normalize.Enum(f.RelativePrice); rp != "" {
		q["relative_price"] = rp
	}

	opts := options.Find().
		SetProjection(compactProjection).
		SetSort(bson.D{{Key: "name_ci", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recipe
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBatch loads the recipes for the given ids. Missing ids are simply
// absent from the result. Compact drops ingredients and steps.
func (s *Store) GetBatch(ctx context.Context, ids []primitive.ObjectID, compact bool) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find()
	if compact {
		opts.SetProjection(compactProjection)
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recipe
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByTenant returns all recipes owned by tenantID.
func (s *Store) ListByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]models.Recipe, error) {
	cur, err := s.c.Find(ctx, bson.M{"tenant_id": tenantID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recipe
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a recipe owned by tenantID. User-supplied text is
// sanitized before storage.
func (s *Store) Create(ctx context.Context, tenantID primitive.ObjectID, r models.Recipe) (models.Recipe, error) {
	r.ID = primitive.NewObjectID()
	r.TenantID = tenantID
	r.Name = sanitize.Text(normalize.Name(r.Name))
	if r.Name == "" {
		return models.Recipe{}, errBadName
	}
	r.NameCI = text.Fold(r.Name)
	r.Description = sanitize.Text(r.Description)
	for i := range r.MealTypes {
		r.MealTypes[i] = normalize.Enum(r.MealTypes[i])
	}
	for i := range r.FoodOrigins {
		r.FoodOrigins[i] = normalize.Enum(r.FoodOrigins[i])
	}
	r.RelativePrice = normalize.Enum(r.RelativePrice)
	for i := range r.Steps {
		r.Steps[i].Description = sanitize.Text(r.Steps[i].Description)
	}

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Recipe{}, err
	}
	return r, nil
}

// Delete removes a recipe owned by tenantID. Returns ErrNotFound when
// the recipe does not exist and ErrNotOwner when it belongs to someone
// else.
func (s *Store) Delete(ctx context.Context, tenantID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "tenant_id": tenantID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		exists, err := s.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrNotOwner
		}
		return ErrNotFound
	}
	return nil
}
