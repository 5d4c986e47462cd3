// internal/app/store/recipes/merge.go
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

// Patch is a partial recipe update. Nil fields are left untouched;
// non-nil fields replace the stored value, including empty slices,
// which clear the field.
type Patch struct {
	Name          *string                    `json:"name"`
	Description   *string                    `json:"description"`
	ImageURL      *string                    `json:"imageUrl"`
	Public        *bool                      `json:"public"`
	MealTypes     *[]string                  `json:"mealTypes"`
	FoodOrigins   *[]string                  `json:"foodOrigins"`
	RelativePrice *string                    `json:"relativePrice"`
	Duration      *models.Amount             `json:"duration"`
	CategoryIDs   *[]primitive.ObjectID      `json:"categoryIds"`
	Ingredients   *[]models.RecipeIngredient `json:"ingredients"`
	Steps         *[]models.RecipeStep       `json:"steps"`
}

// update builds the $set document field by field. Each field is merged
// explicitly so a reviewer can see exactly which request fields can
// touch which stored fields.
func (p Patch) update() (bson.M, error) {
	set := bson.M{}
	if p.Name != nil {
		name := sanitize.Text(normalize.Name(*p.Name))
		if name == "" {
			return nil, errBadName
		}
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if p.Description != nil {
		set["description"] = sanitize.Text(*p.Description)
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}
	if p.Public != nil {
		set["public"] = *p.Public
	}
	if p.MealTypes != nil {
		set["meal_types"] = normalizeEnums(*p.MealTypes)
	}
	if p.FoodOrigins != nil {
		set["food_origins"] = normalizeEnums(*p.FoodOrigins)
	}
	if p.RelativePrice != nil {
		set["relative_price"] = normalize.Enum(*p.RelativePrice)
	}
	if p.Duration != nil {
		set["duration"] = *p.Duration
	}
	if p.CategoryIDs != nil {
		set["category_ids"] = *p.CategoryIDs
	}
	if p.Ingredients != nil {
		set["ingredients"] = *p.Ingredients
	}
	if p.Steps != nil {
		steps := make([]models.RecipeStep, len(*p.Steps))
		copy(steps, *p.Steps)
		for i := range steps {
			steps[i].Description = sanitize.Text(steps[i].Description)
		}
		set["steps"] = steps
	}
	return set, nil
}

func normalizeEnums(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = normalize.Enum(v)
	}
	return out
}

// ApplyPatch merges a partial update into the recipe owned by tenantID
// and returns the updated document. A patch with no fields set is a
// no-op read.
func (s *Store) ApplyPatch(ctx context.Context, tenantID, id primitive.ObjectID, p Patch) (*models.Recipe, error) {
	set, err := p.update()
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		r, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if r.TenantID != tenantID {
			return nil, ErrNotOwner
		}
		return r, nil
	}

	var r models.Recipe
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "tenant_id": tenantID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err == nil {
		return &r, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		exists, eerr := s.Exists(ctx, id)
		if eerr != nil {
			return nil, eerr
		}
		if exists {
			return nil, ErrNotOwner
		}
		return nil, ErrNotFound
	}
	return nil, err
}
