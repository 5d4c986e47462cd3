// internal/app/store/users/recipes.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddOwnedRecipe records recipeID on the user's owned-recipe list.
// Called when a recipe is created; idempotent via $addToSet.
func (s *Store) AddOwnedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"recipe_ids": recipeID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveOwnedRecipe drops recipeID from the user's owned-recipe list.
func (s *Store) RemoveOwnedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"recipe_ids": recipeID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSavedRecipe bookmarks recipeID for the user. Returns
// ErrAlreadySaved when the recipe is already on the list.
func (s *Store) AddSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	// No updated_at bump here: ModifiedCount must reflect only the
	// $addToSet so an already-saved recipe is detectable.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"saved_recipe_ids": recipeID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrAlreadySaved
	}
	return nil
}

// RemoveSavedRecipe removes a bookmark. Returns ErrNotSaved when the
// recipe was not on the list.
func (s *Store) RemoveSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"saved_recipe_ids": recipeID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrNotSaved
	}
	return nil
}

// HasSavedRecipe reports whether recipeID is on the user's saved list.
func (s *Store) HasSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": userID, "saved_recipe_ids": recipeID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReplaceSavedRecipes overwrites the saved-recipe list wholesale. The
// caller validates that every id refers to an existing recipe.
func (s *Store) ReplaceSavedRecipes(ctx context.Context, userID primitive.ObjectID, recipeIDs []primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"saved_recipe_ids": recipeIDs,
			"updated_at":       time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetGrocery returns the user's grocery list, which may be nil when the
// user has never saved one.
func (s *Store) GetGrocery(ctx context.Context, userID primitive.ObjectID) (*models.Grocery, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Grocery, nil
}

// SetGrocery replaces the user's grocery list.
func (s *Store) SetGrocery(ctx context.Context, userID primitive.ObjectID, g models.Grocery) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"grocery":    g,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
