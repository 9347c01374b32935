package ingredients

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"ladle/db"
	"ladle/logger"
	"ladle/models"
	"ladle/rdx"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogueKey = "ingredient_catalogue"

// GetIngredients lists the ingredient catalogue. Without a search term the
// full catalogue is served from the redis cache when warm; a search term
// filters by name prefix, case-insensitive.
func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	search := r.URL.Query().Get("search")

	if search == "" {
		if items, ok := cachedCatalogue(ctx); ok {
			utils.RespondWithJSON(w, http.StatusOK, items)
			return
		}
	}

	query := bson.M{}
	if search != "" {
		query["name"] = bson.M{"$regex": "^" + search, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := db.IngredientCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Ingredient
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode ingredients")
		return
	}
	if len(items) == 0 {
		items = []models.Ingredient{}
	}

	if search == "" {
		cacheCatalogue(ctx, items)
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	var item models.Ingredient
	if err := db.IngredientCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func cachedCatalogue(ctx context.Context) ([]models.Ingredient, bool) {
	if rdx.Conn == nil {
		return nil, false
	}
	val, err := rdx.Conn.Get(ctx, catalogueKey).Result()
	if err != nil || val == "" {
		return nil, false
	}
	var items []models.Ingredient
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false
	}
	return items, true
}

func cacheCatalogue(ctx context.Context, items []models.Ingredient) {
	if rdx.Conn == nil || len(items) == 0 {
		return
	}
	if data, err := json.Marshal(items); err == nil {
		_ = rdx.Conn.Set(ctx, catalogueKey, data, 2*time.Hour).Err()
	}
}

// Bootstrap seeds the ingredient catalogue from data/ingredients.csv
// (name,unit per row) when the collection is empty. The catalogue is trusted
// reference data; end users never write it through this service.
func Bootstrap(ctx context.Context) error {
	log := logger.WithComponent("ingredients")

	count, err := db.IngredientCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	file, err := os.Open("data/ingredients.csv")
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Msg("no seed file, catalogue left empty")
			return nil
		}
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var docs []interface{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < 2 {
			continue
		}
		docs = append(docs, models.Ingredient{Name: record[0], Unit: record[1]})
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := db.IngredientCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	if rdx.Conn != nil {
		_ = rdx.Conn.Del(ctx, catalogueKey).Err()
	}
	log.Info().Int("count", len(docs)).Msg("catalogue seeded")
	return nil
}
