package suggestions

import (
	"net/http"

	"ladle/db"
	"ladle/models"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestFollowers proposes authors the caller does not follow yet.
func SuggestFollowers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	page, limit := utils.ParsePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	skip := (page - 1) * limit

	cursor, err := db.FollowingsCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err := cursor.All(ctx, &follows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode follow data")
		return
	}

	excluded := []string{userID}
	for _, follow := range follows {
		excluded = append(excluded, follow.AuthorID)
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"userid": 1, "username": 1, "bio": 1})

	userCursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$nin": excluded}}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	defer userCursor.Close(ctx)

	suggested := []models.UserSuggest{}
	if err := userCursor.All(ctx, &suggested); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode suggestions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, suggested)
}
