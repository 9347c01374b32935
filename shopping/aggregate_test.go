package shopping

import (
	"context"
	"testing"

	"ladle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	eggsID  = primitive.NewObjectID()
	flourID = primitive.NewObjectID()
)

func eggs(amount int64) models.IngredientLine {
	return models.IngredientLine{IngredientID: eggsID, Name: "eggs", Unit: "pcs", Amount: amount}
}

func flour(amount int64) models.IngredientLine {
	return models.IngredientLine{IngredientID: flourID, Name: "flour", Unit: "g", Amount: amount}
}

func TestAggregateSumsAcrossRecipes(t *testing.T) {
	// recipe A: 2 eggs; recipe B: 3 eggs, 1 flour
	items := AggregateLines([]models.IngredientLine{eggs(2), eggs(3), flour(1)})

	require.Len(t, items, 2)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, int64(5), items[0].Amount)
	assert.Equal(t, "flour", items[1].Name)
	assert.Equal(t, int64(1), items[1].Amount)
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := AggregateLines([]models.IngredientLine{eggs(2), flour(1), eggs(3)})
	b := AggregateLines([]models.IngredientLine{flour(1), eggs(3), eggs(2)})
	assert.Equal(t, a, b)
}

func TestAggregateEmpty(t *testing.T) {
	items := AggregateLines(nil)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestAggregateKeepsDistinctIngredientsWithSameName(t *testing.T) {
	otherEggsID := primitive.NewObjectID()
	items := AggregateLines([]models.IngredientLine{
		eggs(2),
		{IngredientID: otherEggsID, Name: "eggs", Unit: "dozen", Amount: 1},
	})
	// grouping is by ingredient id, not display name
	require.Len(t, items, 2)
}

func TestAggregateSortedByNameThenUnit(t *testing.T) {
	items := AggregateLines([]models.IngredientLine{
		flour(100),
		eggs(1),
		{IngredientID: primitive.NewObjectID(), Name: "flour", Unit: "cup", Amount: 2},
	})
	require.Len(t, items, 3)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, "cup", items[1].Unit)
	assert.Equal(t, "g", items[2].Unit)
}

type fakeCart struct {
	recipes map[string][]string
}

func (f *fakeCart) RecipeIDs(_ context.Context, userID string, kind models.CollectionKind) ([]string, error) {
	if kind != models.KindCart {
		return nil, nil
	}
	return f.recipes[userID], nil
}

type fakeLines struct {
	byRecipe map[string][]models.IngredientLine
}

func (f *fakeLines) LinesForRecipes(_ context.Context, recipeIDs []string) ([]models.IngredientLine, error) {
	var out []models.IngredientLine
	for _, id := range recipeIDs {
		out = append(out, f.byRecipe[id]...)
	}
	return out, nil
}

func TestServiceAggregateScenario(t *testing.T) {
	cart := &fakeCart{recipes: map[string][]string{"u1": {"r1", "r2"}}}
	lines := &fakeLines{byRecipe: map[string][]models.IngredientLine{
		"r1": {eggs(2)},
		"r2": {eggs(3), flour(1)},
	}}
	svc := NewService(cart, lines)
	ctx := context.Background()

	items, err := svc.Aggregate(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].Amount)
	assert.Equal(t, int64(1), items[1].Amount)

	// removing recipe r1 from the cart drops its contribution
	cart.recipes["u1"] = []string{"r2"}
	items, err = svc.Aggregate(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].Amount)
	assert.Equal(t, int64(1), items[1].Amount)
}

func TestServiceAggregateEmptyCart(t *testing.T) {
	svc := NewService(&fakeCart{recipes: map[string][]string{}}, &fakeLines{})

	items, err := svc.Aggregate(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRenderText(t *testing.T) {
	out := RenderText([]models.ShoppingItem{
		{Name: "eggs", Unit: "pcs", Amount: 5},
		{Name: "flour", Unit: "g", Amount: 1},
	})
	assert.Contains(t, out, "- eggs (pcs): 5\n")
	assert.Contains(t, out, "- flour (g): 1\n")
}
