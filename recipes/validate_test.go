package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() RecipeInput {
	return RecipeInput{
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		CookingTime: 10,
		Tags:        []string{"breakfast"},
		Ingredients: []LineInput{{IngredientID: "i1", Amount: 2}},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RecipeInput)
	}{
		{"missing name", func(in *RecipeInput) { in.Name = "" }},
		{"missing text", func(in *RecipeInput) { in.Text = "" }},
		{"zero cooking time", func(in *RecipeInput) { in.CookingTime = 0 }},
		{"negative cooking time", func(in *RecipeInput) { in.CookingTime = -5 }},
		{"no tags", func(in *RecipeInput) { in.Tags = nil }},
		{"duplicate tag", func(in *RecipeInput) { in.Tags = []string{"a", "a"} }},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }},
		{"zero amount", func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }},
		{"duplicate ingredient", func(in *RecipeInput) {
			in.Ingredients = append(in.Ingredients, LineInput{IngredientID: "i1", Amount: 1})
		}},
		{"empty ingredient id", func(in *RecipeInput) { in.Ingredients[0].IngredientID = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			assert.ErrorIs(t, in.Validate(), ErrValidation)
		})
	}
}
