package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pantryfy/internal/api"
	"pantryfy/internal/config"
	"pantryfy/internal/database"
	"pantryfy/internal/extract"
	"pantryfy/internal/grocery"
	"pantryfy/internal/logging"
	"pantryfy/internal/metrics"
	"pantryfy/internal/planner"
	"pantryfy/internal/platform/provider"
	"pantryfy/internal/platform/spoonacular"
	"pantryfy/internal/platform/web"
	"pantryfy/internal/recipe"
	"pantryfy/internal/search"
	"pantryfy/internal/suggest"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	client := web.NewClient(web.WithTimeout(cfg.Timeout()))

	model, closeModel, err := provider.NewModel(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeModel()

	var (
		recipeAPI extract.RecipeAPI
		finder    search.Finder
	)
	if cfg.SpoonacularAPIKey != "" {
		sc := spoonacular.NewClient(cfg.SpoonacularAPIKey, client)
		recipeAPI, finder = sc, sc
	}

	recipes, plans, closeDB, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	logger.Info("starting pantryfy",
		zap.String("llm_provider", cfg.Provider()),
		zap.Bool("recipe_api", recipeAPI != nil),
		zap.Bool("database", cfg.DatabaseURL != ""),
		zap.Int("port", cfg.Port),
	)

	handler := api.NewHandler(
		extract.New(client, model, recipeAPI, logger),
		recipes,
		plans,
		grocery.NewListStore(),
		search.NewService(finder, logger),
		suggest.NewService(model, logger),
		logger,
	)

	return newRouter(cfg, handler, logger).Run(fmt.Sprintf(":%d", cfg.Port))
}

// newStores uses Postgres when DATABASE_URL is set and in-memory stores
// otherwise.
func newStores(ctx context.Context, cfg *config.Config) (api.RecipeStore, planner.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return recipe.NewMemoryStore(), planner.NewMemoryStore(), func() {}, nil
	}
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return recipe.NewPostgresStore(db), planner.NewPostgresStore(db), func() { db.Close() }, nil
}

func newRouter(cfg *config.Config, handler *api.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger), metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", api.OwnerHeader, logging.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", logging.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(r)
	return r
}
