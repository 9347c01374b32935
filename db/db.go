package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	RecipeCollection      *mongo.Collection
	IngredientCollection  *mongo.Collection
	TagCollection         *mongo.Collection
	CollectionsCollection *mongo.Collection
	FollowingsCollection  *mongo.Collection

	Client *mongo.Client
)

// Init wires the package-level collection handles to a connected client.
func Init(client *mongo.Client, dbName string) {
	Client = client
	database := client.Database(dbName)
	UserCollection = database.Collection("users")
	RecipeCollection = database.Collection("recipes")
	IngredientCollection = database.Collection("ingredients")
	TagCollection = database.Collection("tags")
	CollectionsCollection = database.Collection("collections")
	FollowingsCollection = database.Collection("followings")
}

// EnsureIndexes creates the unique indexes the toggle semantics depend on.
// The (userid, recipeid, kind) index is the source of truth for membership
// uniqueness; services only translate its duplicate-key failures.
func EnsureIndexes(ctx context.Context) error {
	_, err := CollectionsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userid", Value: 1},
			{Key: "recipeid", Value: 1},
			{Key: "kind", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("membership_unique"),
	})
	if err != nil {
		return err
	}

	_, err = FollowingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userid", Value: 1},
			{Key: "authorid", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("follow_unique"),
	})
	if err != nil {
		return err
	}

	_, err = IngredientCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "unit", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("ingredient_unique"),
	})
	if err != nil {
		return err
	}

	_, err = TagCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("tag_slug_unique"),
	})
	return err
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	opts.SetLimit(limit)
	return opts
}
