package routes

import (
	"net/http"

	"ladle/collections"
	"ladle/home"
	"ladle/ingredients"
	"ladle/middleware"
	"ladle/profile"
	"ladle/ratelim"
	"ladle/recipes"
	"ladle/shopping"
	"ladle/suggestions"
	"ladle/tags"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/recipes/tags", ratelim.RateLimit(recipes.GetUsedTags))
	router.GET("/api/v1/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/api/v1/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.POST("/api/v1/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PATCH("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))
}

func AddCollectionRoutes(router *httprouter.Router, h *collections.Handler) {
	router.POST("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(h.AddFavorite))
	router.DELETE("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(h.RemoveFavorite))
	router.POST("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(h.AddToCart))
	router.DELETE("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(h.RemoveFromCart))

	router.GET("/api/v1/recipes/favorites", middleware.Authenticate(h.ListFavorites))
	router.GET("/api/v1/recipes/shopping_cart", middleware.Authenticate(h.ListCart))
}

func AddShoppingRoutes(router *httprouter.Router, h *shopping.Handler) {
	router.GET("/api/v1/recipes/shopping_cart/list", middleware.Authenticate(h.GetShoppingList))
	router.GET("/api/v1/recipes/shopping_cart/download", ratelim.RateLimit(middleware.Authenticate(h.DownloadShoppingList)))
}

func AddIngredientRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ingredients", ratelim.RateLimit(ingredients.GetIngredients))
	router.GET("/api/v1/ingredients/:id", ratelim.RateLimit(ingredients.GetIngredient))
}

func AddTagRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tags", ratelim.RateLimit(tags.GetTags))
	router.GET("/api/v1/tags/:slug", ratelim.RateLimit(tags.GetTag))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.ToggleFollow)))
	router.DELETE("/api/v1/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.ToggleUnFollow)))
	router.GET("/api/v1/follows/:id/status", ratelim.RateLimit(middleware.Authenticate(profile.DoesFollow)))
	router.GET("/api/v1/followers/:id", ratelim.RateLimit(middleware.Authenticate(profile.GetFollowers)))
	router.GET("/api/v1/following/:id", ratelim.RateLimit(middleware.Authenticate(profile.GetFollowing)))
}

func AddSuggestionsRoutes(router *httprouter.Router) {
	router.GET("/api/v1/suggestions/follow", ratelim.RateLimit(middleware.Authenticate(suggestions.SuggestFollowers)))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/home/:apiRoute", middleware.OptionalAuth(home.GetHomeContent))
}
