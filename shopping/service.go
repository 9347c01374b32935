package shopping

import (
	"context"
	"fmt"
	"strings"

	"ladle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartSource lists the recipe ids currently in a user's collection.
// collections.Service satisfies it.
type CartSource interface {
	RecipeIDs(ctx context.Context, userID string, kind models.CollectionKind) ([]string, error)
}

// LineSource expands recipe ids into their ingredient lines.
type LineSource interface {
	LinesForRecipes(ctx context.Context, recipeIDs []string) ([]models.IngredientLine, error)
}

// MongoLineSource reads ingredient lines from the recipes collection with a
// single Find, so one shopping-list read sees one consistent snapshot of the
// expansion step.
type MongoLineSource struct {
	col *mongo.Collection
}

func NewMongoLineSource(col *mongo.Collection) *MongoLineSource {
	return &MongoLineSource{col: col}
}

func (s *MongoLineSource) LinesForRecipes(ctx context.Context, recipeIDs []string) ([]models.IngredientLine, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}

	opts := options.Find().SetProjection(bson.M{"ingredients": 1})
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}

	var lines []models.IngredientLine
	for _, recipe := range recipes {
		lines = append(lines, recipe.Ingredients...)
	}
	return lines, nil
}

// Service produces the consolidated purchase list for a user's cart.
type Service struct {
	cart  CartSource
	lines LineSource
}

func NewService(cart CartSource, lines LineSource) *Service {
	return &Service{cart: cart, lines: lines}
}

// Aggregate builds the purchase list. An empty cart yields an empty list.
func (s *Service) Aggregate(ctx context.Context, userID string) ([]models.ShoppingItem, error) {
	recipeIDs, err := s.cart.RecipeIDs(ctx, userID, models.KindCart)
	if err != nil {
		return nil, err
	}

	lines, err := s.lines.LinesForRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	return AggregateLines(lines), nil
}

// RenderText formats the list as the downloadable document, one item per line.
func RenderText(items []models.ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s): %d\n", item.Name, item.Unit, item.Amount)
	}
	return b.String()
}
