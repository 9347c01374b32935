package collections

import (
	"context"

	"ladle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeCatalog is the read-only view of the recipe collaborator the toggle
// service needs: just enough to confirm a recipe exists and project a preview.
type RecipeCatalog interface {
	Preview(ctx context.Context, recipeID string) (models.RecipePreview, error)
}

type MongoCatalog struct {
	col *mongo.Collection
}

func NewMongoCatalog(col *mongo.Collection) *MongoCatalog {
	return &MongoCatalog{col: col}
}

func (c *MongoCatalog) Preview(ctx context.Context, recipeID string) (models.RecipePreview, error) {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return models.RecipePreview{}, ErrRecipeNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{
		"name":        1,
		"imageUrl":    1,
		"cookingTime": 1,
	})

	var recipe models.Recipe
	err = c.col.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return models.RecipePreview{}, ErrRecipeNotFound
	}
	if err != nil {
		return models.RecipePreview{}, err
	}

	return models.RecipePreview{
		ID:          recipe.ID.Hex(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}
