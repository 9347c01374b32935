package tags

import (
	"net/http"

	"ladle/db"
	"ladle/models"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.TagCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Tag
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tags")
		return
	}
	if len(items) == 0 {
		items = []models.Tag{}
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func GetTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var tag models.Tag
	err := db.TagCollection.FindOne(r.Context(), bson.M{"slug": ps.ByName("slug")}).Decode(&tag)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tag)
}
