package home

import (
	"context"
	"net/http"
	"strings"

	"ladle/db"
	"ladle/models"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetHomeContent handles the dashboard endpoints under /home/:apiRoute.
func GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	apiRoute := strings.ToLower(ps.ByName("apiRoute"))
	ctx := r.Context()

	var (
		data interface{}
		err  error
	)

	switch apiRoute {
	case "newest":
		data, err = getNewestRecipes(ctx)
	case "popular":
		data, err = getPopularRecipes(ctx)
	case "tags":
		data, err = getTags(ctx)
	case "ingredients":
		data, err = getTopIngredients(ctx)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Invalid API route")
		return
	}

	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch data: "+err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, data)
}

func getNewestRecipes(ctx context.Context) ([]models.Recipe, error) {
	return findRecipes(ctx, db.OptionsFindLatest(6))
}

func getPopularRecipes(ctx context.Context) ([]models.Recipe, error) {
	opts := db.OptionsFindLatest(6)
	opts.SetSort(bson.D{{Key: "views", Value: -1}})
	return findRecipes(ctx, opts)
}

func findRecipes(ctx context.Context, opts *options.FindOptions) ([]models.Recipe, error) {
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := []models.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func getTags(ctx context.Context) ([]models.Tag, error) {
	cursor, err := db.TagCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// getTopIngredients ranks ingredients by how many recipes use them.
func getTopIngredients(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$ingredients"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$ingredients.name",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: 10}},
	}

	cursor, err := db.RecipeCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []bson.M{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
