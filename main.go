package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ladle/collections"
	"ladle/db"
	"ladle/ingredients"
	"ladle/logger"
	"ladle/middleware"
	"ladle/rdx"
	"ladle/routes"
	"ladle/shopping"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Security headers middleware
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Log.Info().
			Str("method", r.Method).
			Str("path", r.RequestURI).
			Str("remote", r.RemoteAddr).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("200"))
}

// Set up all routes and middleware layers
func setupRouter(collectionHandler *collections.Handler, shoppingHandler *shopping.Handler) http.Handler {
	router := httprouter.New()
	router.GET("/health", healthCheck)

	routes.AddRecipeRoutes(router)
	routes.AddCollectionRoutes(router, collectionHandler)
	routes.AddShoppingRoutes(router, shoppingHandler)
	routes.AddIngredientRoutes(router)
	routes.AddTagRoutes(router)
	routes.AddProfileRoutes(router)
	routes.AddSuggestionsRoutes(router)
	routes.AddHomeRoutes(router)
	routes.AddStaticRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return middleware.RecoverMiddleware(loggingMiddleware(securityHeaders(c.Handler(router))))
}

func main() {
	godotenv.Load()

	logger.Init(logger.Config{
		Level:      os.Getenv("LOG_LEVEL"),
		JSONOutput: os.Getenv("LOG_JSON") == "true",
	})
	log := logger.WithComponent("main")

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal().Msg("MONGODB_URI environment variable is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is not set")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "ladledb"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		log.Fatal().Err(err).Msg("MongoDB ping failed")
	}

	db.Init(client, dbName)
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		if err := rdx.Init(addr); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalogue cache disabled")
		}
	}

	if err := ingredients.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed ingredient catalogue")
	}

	store := collections.NewMongoStore(db.CollectionsCollection)
	catalog := collections.NewMongoCatalog(db.RecipeCollection)
	collectionService := collections.NewService(store, catalog)
	collectionHandler := collections.NewHandler(collectionService)

	shoppingService := shopping.NewService(collectionService, shopping.NewMongoLineSource(db.RecipeCollection))
	shoppingHandler := shopping.NewHandler(shoppingService)

	handler := setupRouter(collectionHandler, shoppingHandler)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":10000"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	<-shutdownChan

	log.Info().Msg("shutdown signal received, draining")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped cleanly")
}
