package recipes

import (
	"errors"
	"fmt"
)

// RecipeInput is the client-supplied payload before ingredient resolution.
type RecipeInput struct {
	Name        string      `json:"name"`
	Text        string      `json:"text"`
	CookingTime int         `json:"cookingTime"`
	Tags        []string    `json:"tags"`
	Ingredients []LineInput `json:"ingredients"`
}

type LineInput struct {
	IngredientID string `json:"ingredientId"`
	Amount       int64  `json:"amount"`
}

// ErrValidation marks a malformed payload rejected before any store access.
var ErrValidation = errors.New("recipes: validation failed")

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Validate applies the payload rules: name and text present, cooking time at
// least one minute, at least one tag with no repeats, at least one ingredient
// line with positive amount and no repeated ingredient.
func (in RecipeInput) Validate() error {
	if in.Name == "" {
		return validationError("name is required")
	}
	if in.Text == "" {
		return validationError("text is required")
	}
	if in.CookingTime < 1 {
		return validationError("cooking time must be at least 1 minute")
	}

	if err := validateTags(in.Tags); err != nil {
		return err
	}
	return validateLines(in.Ingredients)
}

func validateTags(tags []string) error {
	if len(tags) == 0 {
		return validationError("at least one tag is required")
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			return validationError("tag %q is repeated", tag)
		}
		seen[tag] = true
	}
	return nil
}

func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return validationError("at least one ingredient is required")
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.IngredientID == "" {
			return validationError("ingredient id is required")
		}
		if line.Amount < 1 {
			return validationError("ingredient amount must be at least 1")
		}
		if seen[line.IngredientID] {
			return validationError("ingredient %s is repeated", line.IngredientID)
		}
		seen[line.IngredientID] = true
	}
	return nil
}
