package collections

import (
	"context"
	"sync"
	"testing"

	"ladle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]models.CollectionEntry

	// reportAbsent makes Exists lie so tests can force the insert path to
	// hit the uniqueness constraint, as a lost race would.
	reportAbsent bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]models.CollectionEntry)}
}

func key(userID, recipeID string, kind models.CollectionKind) string {
	return userID + "|" + recipeID + "|" + string(kind)
}

func (f *fakeStore) Exists(_ context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error) {
	if f.reportAbsent {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key(userID, recipeID, kind)]
	return ok, nil
}

func (f *fakeStore) Insert(_ context.Context, entry models.CollectionEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(entry.UserID, entry.RecipeID, entry.Kind)
	if _, ok := f.entries[k]; ok {
		return ErrDuplicateEntry
	}
	f.entries[k] = entry
	return nil
}

func (f *fakeStore) Remove(_ context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(userID, recipeID, kind)
	if _, ok := f.entries[k]; !ok {
		return false, nil
	}
	delete(f.entries, k)
	return true, nil
}

func (f *fakeStore) ListForUser(_ context.Context, userID string, kind models.CollectionKind) ([]models.CollectionEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CollectionEntry
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	previews map[string]models.RecipePreview
}

func (f *fakeCatalog) Preview(_ context.Context, recipeID string) (models.RecipePreview, error) {
	preview, ok := f.previews[recipeID]
	if !ok {
		return models.RecipePreview{}, ErrRecipeNotFound
	}
	return preview, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	catalog := &fakeCatalog{previews: map[string]models.RecipePreview{
		"r1": {ID: "r1", Name: "Shakshuka", CookingTime: 25},
		"r2": {ID: "r2", Name: "Pancakes", CookingTime: 15},
	}}
	return NewService(store, catalog), store
}

func TestAddThenListRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	outcome, preview, err := svc.Add(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)
	assert.Equal(t, Added, outcome)
	assert.Equal(t, "Shakshuka", preview.Name)

	ids, err := svc.RecipeIDs(ctx, "u1", models.KindCart)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids)

	// the favorite collection is independent of the cart
	ids, err = svc.RecipeIDs(ctx, "u1", models.KindFavorite)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAddDuplicateReturnsAlreadyExists(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	outcome, _, err := svc.Add(ctx, "u1", "r1", models.KindFavorite)
	require.NoError(t, err)
	require.Equal(t, Added, outcome)

	outcome, preview, err := svc.Add(ctx, "u1", "r1", models.KindFavorite)
	require.NoError(t, err)
	assert.Equal(t, AlreadyExists, outcome)
	assert.Equal(t, "r1", preview.ID)
}

func TestAddUnknownRecipe(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Add(context.Background(), "u1", "missing", models.KindCart)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestLostInsertRaceMapsToAlreadyExists(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	outcome, _, err := svc.Add(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)
	require.Equal(t, Added, outcome)

	// Exists now claims the entry is absent; the insert still hits the
	// constraint and the service must treat that as AlreadyExists.
	store.reportAbsent = true
	outcome, _, err = svc.Add(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)
	assert.Equal(t, AlreadyExists, outcome)
}

func TestConcurrentAddsCreateOneEntry(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	const workers = 16
	outcomes := make(chan Outcome, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, _, err := svc.Add(ctx, "u1", "r2", models.KindFavorite)
			assert.NoError(t, err)
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	added := 0
	for outcome := range outcomes {
		if outcome == Added {
			added++
		}
	}
	assert.Equal(t, 1, added, "exactly one concurrent add may win")

	entries, err := store.ListForUser(ctx, "u1", models.KindFavorite)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRemoveIdempotence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)

	outcome, err := svc.Remove(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)
	assert.Equal(t, Removed, outcome)

	outcome, err = svc.Remove(ctx, "u1", "r1", models.KindCart)
	require.NoError(t, err)
	assert.Equal(t, NotAMember, outcome)

	ids, err := svc.RecipeIDs(ctx, "u1", models.KindCart)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListPreviewsSkipsDeletedRecipes(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{previews: map[string]models.RecipePreview{
		"r1": {ID: "r1", Name: "Shakshuka", CookingTime: 25},
	}}
	svc := NewService(store, catalog)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "u1", "r1", models.KindFavorite)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, models.CollectionEntry{
		EntryID: "e2", UserID: "u1", RecipeID: "gone", Kind: models.KindFavorite,
	}))

	previews, err := svc.ListPreviews(ctx, "u1", models.KindFavorite)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "r1", previews[0].ID)
}
