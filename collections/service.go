package collections

import (
	"context"
	"errors"
	"time"

	"ladle/models"

	"github.com/google/uuid"
)

// Outcome is the two-valued result of a membership mutation. Duplicate adds
// and removes of non-members are normal negative outcomes, not errors.
type Outcome int

const (
	Added Outcome = iota
	AlreadyExists
	Removed
	NotAMember
)

// Service implements the membership toggle on top of a Store and the
// read-only recipe catalog.
type Service struct {
	store   Store
	catalog RecipeCatalog
}

func NewService(store Store, catalog RecipeCatalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// Add puts the recipe into the user's collection of the given kind. The
// existence check is only a fast path; when two identical requests race, the
// unique index rejects the loser and that rejection maps to AlreadyExists.
func (s *Service) Add(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (Outcome, models.RecipePreview, error) {
	preview, err := s.catalog.Preview(ctx, recipeID)
	if err != nil {
		return 0, models.RecipePreview{}, err
	}

	exists, err := s.store.Exists(ctx, userID, recipeID, kind)
	if err != nil {
		return 0, models.RecipePreview{}, err
	}
	if exists {
		return AlreadyExists, preview, nil
	}

	entry := models.CollectionEntry{
		EntryID:   uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	err = s.store.Insert(ctx, entry)
	if errors.Is(err, ErrDuplicateEntry) {
		return AlreadyExists, preview, nil
	}
	if err != nil {
		return 0, models.RecipePreview{}, err
	}
	return Added, preview, nil
}

// Remove deletes the membership when present.
func (s *Service) Remove(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (Outcome, error) {
	removed, err := s.store.Remove(ctx, userID, recipeID, kind)
	if err != nil {
		return 0, err
	}
	if !removed {
		return NotAMember, nil
	}
	return Removed, nil
}

// RecipeIDs lists the recipe ids in the user's collection, in entry order.
func (s *Service) RecipeIDs(ctx context.Context, userID string, kind models.CollectionKind) ([]string, error) {
	entries, err := s.store.ListForUser(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.RecipeID)
	}
	return ids, nil
}

// ListPreviews resolves the user's collection into recipe previews. Entries
// whose recipe has since been deleted are skipped, not errors.
func (s *Service) ListPreviews(ctx context.Context, userID string, kind models.CollectionKind) ([]models.RecipePreview, error) {
	entries, err := s.store.ListForUser(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	previews := make([]models.RecipePreview, 0, len(entries))
	for _, entry := range entries {
		preview, err := s.catalog.Preview(ctx, entry.RecipeID)
		if errors.Is(err, ErrRecipeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

// Contains reports membership without mutating anything.
func (s *Service) Contains(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error) {
	return s.store.Exists(ctx, userID, recipeID, kind)
}
