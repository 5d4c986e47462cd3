// internal/app/store/categories/store.go
package categorystore

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
	// ErrNotFound is returned when no category matches the lookup.
	ErrNotFound = errors.New("category not found")
	// ErrDuplicateName is returned when a category with the same folded
	// name already exists.
	ErrDuplicateName = errors.New("category name already exists")
	errBadName       = errors.New("category name is required")
	errBadType       = errors.New("unknown category type")
)

// Store manages the shared categories lookup collection.
type Store struct {
	c *mongo.Collection
}

// New creates a Store over the categories collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// GetByID loads a single category.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// List returns all categories sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a category.
func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	cat.ID = primitive.NewObjectID()
	cat.Name = normalize.Name(cat.Name)
	if cat.Name == "" {
		return models.Category{}, errBadName
	}
	cat.NameCI = text.Fold(cat.Name)
	cat.Type = normalize.Enum(cat.Type)
	if !models.IsValidCategoryType(cat.Type) {
		return models.Category{}, errBadType
	}

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}
	return cat, nil
}

// Delete removes a category.
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
