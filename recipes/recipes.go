package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"ladle/db"
	"ladle/logger"
	"ladle/models"
	"ladle/mq"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// membershipSet loads the ids of recipes the user has in the given collection
// kind, for filter queries and per-recipe annotation.
func membershipSet(ctx context.Context, userID string, kind models.CollectionKind) (map[string]bool, error) {
	set := make(map[string]bool)
	if userID == "" {
		return set, nil
	}
	cursor, err := db.CollectionsCollection.Find(ctx, bson.M{"userid": userID, "kind": kind})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.CollectionEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		set[entry.RecipeID] = true
	}
	return set, nil
}

// membershipSets loads both collection kinds for the requesting user.
// A variable so tests can stand in for the store.
var membershipSets = func(ctx context.Context, userID string) (favorites, cart map[string]bool, err error) {
	favorites, err = membershipSet(ctx, userID, models.KindFavorite)
	if err != nil {
		return nil, nil, err
	}
	cart, err = membershipSet(ctx, userID, models.KindCart)
	if err != nil {
		return nil, nil, err
	}
	return favorites, cart, nil
}

func annotate(recipe *models.Recipe, favorites, cart map[string]bool) {
	id := recipe.ID.Hex()
	recipe.IsFavorited = favorites[id]
	recipe.IsInShoppingCart = cart[id]
}

// GetRecipes lists recipes with the catalogue filters: free-text search,
// tag slugs, author, and the requesting user's favorite/cart membership.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)
	params := r.URL.Query()

	favorites, cart, err := membershipSets(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	query := bson.M{}
	if search := params.Get("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"text": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if tags := params["tags"]; len(tags) > 0 {
		query["tags"] = bson.M{"$in": tags}
	}
	if author := params.Get("author"); author != "" {
		query["authorId"] = author
	}

	// membership filters compose as AND when both are requested
	var memberFilter map[string]bool
	if params.Get("is_favorited") == "true" {
		memberFilter = favorites
	}
	if params.Get("is_in_shopping_cart") == "true" {
		if memberFilter == nil {
			memberFilter = cart
		} else {
			both := make(map[string]bool)
			for id := range memberFilter {
				if cart[id] {
					both[id] = true
				}
			}
			memberFilter = both
		}
	}
	if memberFilter != nil {
		ids := make([]primitive.ObjectID, 0, len(memberFilter))
		for id := range memberFilter {
			if objID, err := primitive.ObjectIDFromHex(id); err == nil {
				ids = append(ids, objID)
			}
		}
		query["_id"] = bson.M{"$in": ids}
	}

	page, limit := utils.ParsePage(params.Get("page"), params.Get("limit"))

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch params.Get("sort") {
	case "oldest":
		sort = bson.D{{Key: "createdAt", Value: 1}}
	case "popular":
		sort = bson.D{{Key: "views", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.RecipeCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode recipes")
		return
	}
	if len(recipes) == 0 {
		recipes = []models.Recipe{}
	}
	for i := range recipes {
		annotate(&recipes[i], favorites, cart)
	}

	total, err := db.RecipeCollection.CountDocuments(ctx, query)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count recipes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"recipes": recipes,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetRecipe returns one recipe and bumps its view counter.
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	userID := utils.GetUserIDFromContext(ctx)
	favorites, cart, err := membershipSets(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipe")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	annotate(&recipe, favorites, cart)

	if _, err := db.RecipeCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		log := logger.WithComponent("recipes")
		log.Warn().Err(err).Str("recipe", id.Hex()).Msg("view counter update failed")
	}

	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

func parseRecipeForm(r *http.Request) (RecipeInput, error) {
	in := RecipeInput{
		Name:        r.FormValue("name"),
		Text:        r.FormValue("text"),
		CookingTime: utils.ParseInt(r.FormValue("cookingTime")),
		Tags:        splitCSV(r.FormValue("tags")),
	}
	raw := r.FormValue("ingredients")
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Ingredients); err != nil {
			return in, validationError("ingredients must be a JSON array")
		}
	}
	return in, nil
}

// resolveLines checks each referenced ingredient exists and denormalizes its
// display fields onto the stored line.
func resolveLines(ctx context.Context, inputs []LineInput) ([]models.IngredientLine, error) {
	lines := make([]models.IngredientLine, 0, len(inputs))
	for _, input := range inputs {
		objID, err := primitive.ObjectIDFromHex(input.IngredientID)
		if err != nil {
			return nil, validationError("unknown ingredient %s", input.IngredientID)
		}
		var ingredient models.Ingredient
		err = db.IngredientCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&ingredient)
		if err == mongo.ErrNoDocuments {
			return nil, validationError("unknown ingredient %s", input.IngredientID)
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.IngredientLine{
			IngredientID: ingredient.ID,
			Name:         ingredient.Name,
			Unit:         ingredient.Unit,
			Amount:       input.Amount,
		})
	}
	return lines, nil
}

func resolveTags(ctx context.Context, slugs []string) error {
	for _, slug := range slugs {
		err := db.TagCollection.FindOne(ctx, bson.M{"slug": slug}).Err()
		if err == mongo.ErrNoDocuments {
			return validationError("unknown tag %q", slug)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateRecipe accepts a multipart form with the payload fields and an
// optional image file.
func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	in, err := parseRecipeForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := resolveTags(ctx, in.Tags); err != nil {
		respondResolveError(w, err)
		return
	}
	lines, err := resolveLines(ctx, in.Ingredients)
	if err != nil {
		respondResolveError(w, err)
		return
	}

	recipe := models.Recipe{
		AuthorID:    userID,
		Name:        in.Name,
		Text:        in.Text,
		Tags:        in.Tags,
		Ingredients: lines,
		CookingTime: in.CookingTime,
		CreatedAt:   time.Now(),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := utils.SaveUpload(file, header, "recipes")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving image")
			return
		}
		recipe.ImageURL = imageURL
		if thumbURL, err := utils.SaveThumbnail(imageURL); err == nil {
			recipe.ThumbURL = thumbURL
		}
	}

	result, err := db.RecipeCollection.InsertOne(ctx, recipe)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	recipe.ID = result.InsertedID.(primitive.ObjectID)

	mq.Emit("recipe-created", mq.Index{
		EntityType: "recipe", Method: "POST", EntityId: recipe.ID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

func respondResolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrValidation) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve references")
}

// loadOwnedRecipe fetches the recipe and confirms the caller authored it.
func loadOwnedRecipe(ctx context.Context, idHex, userID string) (models.Recipe, int, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return models.Recipe{}, http.StatusNotFound, errors.New("recipe not found")
	}
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		return models.Recipe{}, http.StatusNotFound, errors.New("recipe not found")
	}
	if recipe.AuthorID != userID {
		return models.Recipe{}, http.StatusForbidden, errors.New("only the author may modify a recipe")
	}
	return recipe, http.StatusOK, nil
}

// UpdateRecipe applies a partial update; only supplied fields change.
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	recipe, status, err := loadOwnedRecipe(ctx, ps.ByName("id"), userID)
	if err != nil {
		utils.RespondWithError(w, status, err.Error())
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	updates := bson.M{}
	if name := r.FormValue("name"); name != "" {
		updates["name"] = name
	}
	if text := r.FormValue("text"); text != "" {
		updates["text"] = text
	}
	if ct := r.FormValue("cookingTime"); ct != "" {
		minutes := utils.ParseInt(ct)
		if minutes < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "cooking time must be at least 1 minute")
			return
		}
		updates["cookingTime"] = minutes
	}
	if tagsRaw := r.FormValue("tags"); tagsRaw != "" {
		tags := splitCSV(tagsRaw)
		if err := validateTags(tags); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := resolveTags(ctx, tags); err != nil {
			respondResolveError(w, err)
			return
		}
		updates["tags"] = tags
	}
	if raw := r.FormValue("ingredients"); raw != "" {
		var inputs []LineInput
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "ingredients must be a JSON array")
			return
		}
		if err := validateLines(inputs); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		lines, err := resolveLines(ctx, inputs)
		if err != nil {
			respondResolveError(w, err)
			return
		}
		updates["ingredients"] = lines
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if imageURL, err := utils.SaveUpload(file, header, "recipes"); err == nil {
			updates["imageUrl"] = imageURL
			if thumbURL, err := utils.SaveThumbnail(imageURL); err == nil {
				updates["thumbUrl"] = thumbURL
			}
		}
	}

	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	_, err = db.RecipeCollection.UpdateOne(ctx, bson.M{"_id": recipe.ID}, bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	mq.Emit("recipe-updated", mq.Index{
		EntityType: "recipe", Method: "PATCH", EntityId: recipe.ID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// DeleteRecipe removes the recipe and every membership entry pointing at it.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	recipe, status, err := loadOwnedRecipe(ctx, ps.ByName("id"), userID)
	if err != nil {
		utils.RespondWithError(w, status, err.Error())
		return
	}

	if _, err := db.RecipeCollection.DeleteOne(ctx, bson.M{"_id": recipe.ID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
		return
	}
	db.CollectionsCollection.DeleteMany(ctx, bson.M{"recipeid": recipe.ID.Hex()})

	mq.Emit("recipe-deleted", mq.Index{
		EntityType: "recipe", Method: "DELETE", EntityId: recipe.ID.Hex(),
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// GetUsedTags lists the distinct tag slugs currently used by recipes.
func GetUsedTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{
			"_id":  nil,
			"tags": bson.M{"$addToSet": "$tags"},
		}}},
	}

	cursor, err := db.RecipeCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate tags")
		return
	}
	defer cursor.Close(ctx)

	var result []struct {
		Tags []string `bson:"tags"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tags")
		return
	}

	if len(result) > 0 {
		utils.RespondWithJSON(w, http.StatusOK, result[0].Tags)
	} else {
		utils.RespondWithJSON(w, http.StatusOK, []string{})
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
