// internal/app/store/ingredients/store.go
package ingredientstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no ingredient matches the lookup.
	ErrNotFound = errors.New("ingredient not found")
	// ErrDuplicateName is returned when an ingredient with the same
	// folded name already exists.
	ErrDuplicateName = errors.New("ingredient name already exists")
	errBadName       = errors.New("ingredient name is required")
	errBadType       = errors.New("unknown ingredient type")
)

// Store manages the shared ingredients lookup collection.
type Store struct {
	c *mongo.Collection
}

// New creates a Store over the ingredients collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ingredients")}
}

// GetByID loads a single ingredient.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// List returns all ingredients, optionally restricted to one type,
// sorted by folded name.
func (s *Store) List(ctx context.Context, ingredientType string) ([]models.Ingredient, error) {
	q := bson.M{}
	if t := normalize.Enum(ingredientType); t != "" {
		if !models.IsValidIngredientType(t) {
			return nil, errBadType
		}
		q["type"] = t
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Ingredient
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a lookup ingredient.
func (s *Store) Create(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	ing.ID = primitive.NewObjectID()
	ing.Name = normalize.Name(ing.Name)
	if ing.Name == "" {
		return models.Ingredient{}, errBadName
	}
	ing.NameCI = text.Fold(ing.Name)
	ing.Type = normalize.Enum(ing.Type)
	if !models.IsValidIngredientType(ing.Type) {
		return models.Ingredient{}, errBadType
	}

	if _, err := s.c.InsertOne(ctx, ing); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Ingredient{}, ErrDuplicateName
		}
		return models.Ingredient{}, err
	}
	return ing, nil
}

// Delete removes a lookup ingredient.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
