package profile

import (
	"context"
	"net/http"
	"time"

	"ladle/db"
	"ladle/models"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func authorExists(ctx context.Context, authorID string) (bool, error) {
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": authorID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFollow subscribes the caller to the author. The (userid, authorid)
// unique index decides races the same way the collection store does.
func ToggleFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)
	authorID := ps.ByName("id")

	if authorID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	ok, err := authorExists(ctx, authorID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to follow")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID, CreatedAt: time.Now()}
	_, err = db.FollowingsCollection.InsertOne(ctx, follow)
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusConflict, "Already following")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to follow")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"follows": true})
}

func ToggleUnFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)
	authorID := ps.ByName("id")

	res, err := db.FollowingsCollection.DeleteOne(ctx, bson.M{"userid": userID, "authorid": authorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unfollow")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Not following")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func DoesFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)
	authorID := ps.ByName("id")

	err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": userID, "authorid": authorID}).Err()
	follows := err == nil
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check follow status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"follows": follows})
}

// GetFollowers lists the users subscribed to :id.
func GetFollowers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	authorID := ps.ByName("id")

	cursor, err := db.FollowingsCollection.Find(ctx, bson.M{"authorid": authorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch followers")
		return
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err := cursor.All(ctx, &follows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode followers")
		return
	}

	userIDs := make([]string, 0, len(follows))
	for _, follow := range follows {
		userIDs = append(userIDs, follow.UserID)
	}

	users := []models.User{}
	if len(userIDs) > 0 {
		userCursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": userIDs}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch followers")
			return
		}
		defer userCursor.Close(ctx)
		if err := userCursor.All(ctx, &users); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode followers")
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func recipePreviews(ctx context.Context, authorID string, limit int64) ([]models.RecipePreview, int64, error) {
	count, err := db.RecipeCollection.CountDocuments(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"name": 1, "imageUrl": 1, "cookingTime": 1})

	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}

	previews := make([]models.RecipePreview, 0, len(recipes))
	for _, recipe := range recipes {
		previews = append(previews, models.RecipePreview{
			ID:          recipe.ID.Hex(),
			Name:        recipe.Name,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}
	return previews, count, nil
}

// GetFollowing lists the authors :id subscribes to, each with a short recipe
// preview list and total recipe count.
func GetFollowing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("id")

	recipesLimit := int64(utils.ParseInt(r.URL.Query().Get("recipes_limit")))
	if recipesLimit < 1 {
		recipesLimit = 3
	}

	cursor, err := db.FollowingsCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch following")
		return
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err := cursor.All(ctx, &follows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode following")
		return
	}

	entries := []models.FollowingEntry{}
	for _, follow := range follows {
		var author models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": follow.AuthorID}).Decode(&author); err != nil {
			continue
		}

		previews, count, err := recipePreviews(ctx, follow.AuthorID, recipesLimit)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch author recipes")
			return
		}
		entries = append(entries, models.FollowingEntry{
			User:         author,
			IsSubscribed: true,
			Recipes:      previews,
			RecipesCount: count,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
