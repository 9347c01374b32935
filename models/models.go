package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionKind names a user-scoped recipe set.
type CollectionKind string

const (
	KindFavorite CollectionKind = "favorite"
	KindCart     CollectionKind = "cart"
)

// Ingredient is trusted reference data; end users never mutate it.
type Ingredient struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name"          json:"name"`
	Unit string             `bson:"unit"          json:"measurementUnit"`
}

// IngredientLine says "this recipe needs Amount Unit of the ingredient".
// Name and Unit are denormalized from the ingredient so reads stay single-query.
type IngredientLine struct {
	IngredientID primitive.ObjectID `bson:"ingredientId" json:"ingredientId"`
	Name         string             `bson:"name"         json:"name"`
	Unit         string             `bson:"unit"         json:"measurementUnit"`
	Amount       int64              `bson:"amount"       json:"amount"`
}

type Tag struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name"          json:"name"`
	Color string             `bson:"color"         json:"color"`
	Slug  string             `bson:"slug"          json:"slug"`
}

type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID    string             `bson:"authorId"      json:"authorId"`
	Name        string             `bson:"name"          json:"name"`
	Text        string             `bson:"text"          json:"text"`
	ImageURL    string             `bson:"imageUrl"      json:"imageUrl"`
	ThumbURL    string             `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
	Tags        []string           `bson:"tags"          json:"tags"`
	Ingredients []IngredientLine   `bson:"ingredients"   json:"ingredients"`
	CookingTime int                `bson:"cookingTime"   json:"cookingTime"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	Views       int                `bson:"views"         json:"views"`

	// Per-request annotations for the requesting user, never persisted.
	IsFavorited      bool `bson:"-" json:"isFavorited"`
	IsInShoppingCart bool `bson:"-" json:"isInShoppingCart"`
}

// RecipePreview is the short projection returned by membership endpoints
// and embedded in following listings.
type RecipePreview struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	ImageURL    string `bson:"imageUrl" json:"imageUrl"`
	CookingTime int    `bson:"cookingTime" json:"cookingTime"`
}

// CollectionEntry records membership of one recipe in one user's collection.
// (UserID, RecipeID, Kind) is unique; membership is presence of the row.
type CollectionEntry struct {
	EntryID   string         `bson:"entryId"   json:"entryId"`
	UserID    string         `bson:"userid"    json:"userId"`
	RecipeID  string         `bson:"recipeid"  json:"recipeId"`
	Kind      CollectionKind `bson:"kind"      json:"kind"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// ShoppingItem is one aggregated line of the purchase list.
type ShoppingItem struct {
	IngredientID string `json:"ingredientId"`
	Name         string `json:"name"`
	Unit         string `json:"measurementUnit"`
	Amount       int64  `json:"amount"`
}

type User struct {
	UserID    string `bson:"userid"    json:"userId"`
	Username  string `bson:"username"  json:"username"`
	Email     string `bson:"email"     json:"email"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName"  json:"lastName"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`
}

// Follow records a subscription of UserID to AuthorID; the pair is unique.
type Follow struct {
	UserID    string    `bson:"userid"    json:"userId"`
	AuthorID  string    `bson:"authorid"  json:"authorId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// FollowingEntry is the expanded representation of one subscription.
type FollowingEntry struct {
	User
	IsSubscribed bool            `json:"isSubscribed"`
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipesCount"`
}

type UserSuggest struct {
	UserID      string `bson:"userid"   json:"userId"`
	Username    string `bson:"username" json:"username"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`
	IsFollowing bool   `bson:"-" json:"is_following"`
}
