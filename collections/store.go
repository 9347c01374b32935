package collections

import (
	"context"
	"errors"

	"ladle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEntry reports that the (user, recipe, kind) membership
	// already exists. The unique index raises it; services translate it.
	ErrDuplicateEntry = errors.New("collections: entry already exists")
	// ErrRecipeNotFound reports an unknown recipe id.
	ErrRecipeNotFound = errors.New("collections: recipe not found")
)

// Store is the durable membership store for user-scoped recipe collections.
type Store interface {
	Exists(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error)
	Insert(ctx context.Context, entry models.CollectionEntry) error
	Remove(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error)
	ListForUser(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionEntry, error)
}

// MongoStore keeps one document per membership in the collections collection.
// Uniqueness of (userid, recipeid, kind) is enforced by the index created in
// db.EnsureIndexes, not by the Exists fast path.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func membershipFilter(userID, recipeID string, kind models.CollectionKind) bson.M {
	return bson.M{"userid": userID, "recipeid": recipeID, "kind": kind}
}

func (s *MongoStore) Exists(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error) {
	err := s.col.FindOne(ctx, membershipFilter(userID, recipeID, kind)).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) Insert(ctx context.Context, entry models.CollectionEntry) error {
	_, err := s.col.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (s *MongoStore) Remove(ctx context.Context, userID, recipeID string, kind models.CollectionKind) (bool, error) {
	res, err := s.col.DeleteOne(ctx, membershipFilter(userID, recipeID, kind))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) ListForUser(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{"userid": userID, "kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.CollectionEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
