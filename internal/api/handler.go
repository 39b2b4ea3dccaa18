package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantryfy/internal/extract"
	"pantryfy/internal/grocery"
	"pantryfy/internal/planner"
	"pantryfy/internal/platform/spoonacular"
	"pantryfy/internal/recipe"
	"pantryfy/internal/search"
	"pantryfy/internal/suggest"
)

const (
	// OwnerHeader identifies the caller. Authentication happens upstream.
	OwnerHeader  = "X-User-ID"
	defaultOwner = "default_user"

	extractTimeout = 90 * time.Second
	storeTimeout   = 5 * time.Second
	searchTimeout  = 20 * time.Second
	suggestTimeout = 30 * time.Second
)

// RecipeExtractor defines the interface for turning a URL into a recipe.
type RecipeExtractor interface {
	ExtractRecipeFromURL(ctx context.Context, url string) extract.Outcome
}

// RecipeStore defines the interface for saved recipe operations.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, r *recipe.SavedRecipe) (string, error)
	GetSavedRecipes(ctx context.Context, ownerID string) ([]recipe.SavedRecipe, error)
	GetSavedRecipe(ctx context.Context, id string) (*recipe.SavedRecipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// RecipeSearcher defines the interface for by-ingredient recipe search.
type RecipeSearcher interface {
	Search(ctx context.Context, ingredients []string, opts spoonacular.SearchOptions) (search.Results, error)
}

// Suggester defines the interface for dish suggestions.
type Suggester interface {
	Suggest(ctx context.Context, ingredients []string) (suggest.Suggestion, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Extractor    RecipeExtractor
	RecipeStore  RecipeStore
	PlannerStore planner.Store
	GroceryLists *grocery.ListStore
	Searcher     RecipeSearcher
	Suggester    Suggester
	Logger       *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(extractor RecipeExtractor, recipeStore RecipeStore, plannerStore planner.Store,
	lists *grocery.ListStore, searcher RecipeSearcher, suggester Suggester, logger *zap.Logger) *Handler {
	return &Handler{
		Extractor:    extractor,
		RecipeStore:  recipeStore,
		PlannerStore: plannerStore,
		GroceryLists: lists,
		Searcher:     searcher,
		Suggester:    suggester,
		Logger:       logger,
	}
}

// RegisterRoutes mounts every endpoint on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/extract", h.Extract)

	r.POST("/recipes", h.SaveRecipe)
	r.GET("/recipes", h.GetRecipes)
	r.GET("/recipes/:id", h.GetRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)
	r.POST("/recipes/parse-ingredients", h.ParseIngredients)

	r.POST("/grocery-list", h.GenerateGroceryList)
	r.GET("/grocery-list", h.GetGroceryList)
	r.GET("/grocery-list/text", h.GetGroceryListText)
	// Item keys may contain "/", so the key and action share a catch-all.
	r.POST("/grocery-list/items/*keyAction", h.ToggleItem)
	r.DELETE("/grocery-list", h.ClearGroceryList)

	r.GET("/meal-plans", h.GetMealPlans)
	r.GET("/meal-plans/week", h.GetWeek)
	r.PUT("/meal-plans", h.SetMealPlan)
	r.DELETE("/meal-plans/:id", h.DeleteMealPlan)

	r.GET("/pantry", h.GetPantry)
	r.POST("/pantry", h.AddPantryItem)
	r.DELETE("/pantry/:id", h.DeletePantryItem)

	r.GET("/search", h.Search)
	r.POST("/suggestion", h.Suggest)
}

// owner returns the caller's id from the X-User-ID header.
func owner(c *gin.Context) string {
	if id := c.GetHeader(OwnerHeader); id != "" {
		return id
	}
	return defaultOwner
}

// fail maps domain errors to status codes. Unexpected errors are logged and
// reported without detail.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recipe.ErrNotFound),
		errors.Is(err, planner.ErrNotFound),
		errors.Is(err, grocery.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recipe.ErrInvalidRecipe),
		errors.Is(err, planner.ErrInvalid),
		errors.Is(err, search.ErrNoIngredients),
		errors.Is(err, suggest.ErrNoIngredients):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, search.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
