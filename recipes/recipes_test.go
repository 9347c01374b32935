package recipes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ladle/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, userID))
}

func failingMembership(t *testing.T) {
	t.Helper()
	orig := membershipSets
	membershipSets = func(ctx context.Context, userID string) (map[string]bool, map[string]bool, error) {
		return nil, nil, errors.New("collections lookup failed")
	}
	t.Cleanup(func() { membershipSets = orig })
}

func TestGetRecipeInvalidID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/recipe/junk", nil)

	GetRecipe(rec, req, httprouter.Params{{Key: "id", Value: "junk"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecipeMembershipLookupFailure(t *testing.T) {
	failingMembership(t)

	id := primitive.NewObjectID().Hex()
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/recipes/recipe/"+id, nil), "u1")

	GetRecipe(rec, req, httprouter.Params{{Key: "id", Value: id}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetRecipesMembershipLookupFailure(t *testing.T) {
	failingMembership(t)

	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/recipes?is_favorited=true", nil), "u1")

	GetRecipes(rec, req, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMembershipSetsAnonymous(t *testing.T) {
	favorites, cart, err := membershipSets(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, favorites)
	assert.Empty(t, cart)
}
