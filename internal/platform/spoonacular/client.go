// Package spoonacular is a client for the Spoonacular recipe API.
package spoonacular

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"pantryfy/internal/platform/web"
)

// DefaultBaseURL is the public API host.
const DefaultBaseURL = "https://api.spoonacular.com"

const resultsPerSearch = 12

// Ingredient is an entry of a recipe's extendedIngredients.
type Ingredient struct {
	Name         string  `json:"name"`
	OriginalName string  `json:"originalName"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Original     string  `json:"original"`
}

// ExtractedRecipe is the subset of /recipes/extract used for imports.
type ExtractedRecipe struct {
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	Servings            int          `json:"servings"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// IngredientMatch is a used or missed ingredient of a search result.
type IngredientMatch struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image"`
}

// RecipeMatch is one result of /recipes/findByIngredients.
type RecipeMatch struct {
	ID                    int               `json:"id"`
	Title                 string            `json:"title"`
	Image                 string            `json:"image"`
	UsedIngredientCount   int               `json:"usedIngredientCount"`
	MissedIngredientCount int               `json:"missedIngredientCount"`
	UsedIngredients       []IngredientMatch `json:"usedIngredients"`
	MissedIngredients     []IngredientMatch `json:"missedIngredients"`
	Likes                 int               `json:"likes"`
}

// SearchOptions narrows a by-ingredient search. Zero values are ignored.
type SearchOptions struct {
	MaxTime int
	Cuisine string
	Diet    string
}

// Client calls the Spoonacular API.
type Client struct {
	apiKey  string
	baseURL string
	web     *web.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient creates a Client that sends requests through w.
func NewClient(apiKey string, w *web.Client, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: DefaultBaseURL, web: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtractRecipe asks the API to scrape and analyze the recipe at pageURL.
func (c *Client) ExtractRecipe(ctx context.Context, pageURL string) (*ExtractedRecipe, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("analyze", "true")
	q.Set("forceExtraction", "true")

	var out ExtractedRecipe
	if err := c.web.GetJSON(ctx, c.endpoint("/recipes/extract", q), &out); err != nil {
		return nil, fmt.Errorf("spoonacular: extract recipe: %w", err)
	}
	return &out, nil
}

// FindByIngredients returns recipes that use the given ingredients, ranked to
// minimize missing ones.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, opts SearchOptions) ([]RecipeMatch, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(resultsPerSearch))
	q.Set("ranking", "2")
	if opts.MaxTime > 0 {
		q.Set("maxReadyTime", strconv.Itoa(opts.MaxTime))
	}
	if opts.Cuisine != "" {
		q.Set("cuisine", opts.Cuisine)
	}
	if opts.Diet != "" {
		q.Set("diet", opts.Diet)
	}

	var out []RecipeMatch
	if err := c.web.GetJSON(ctx, c.endpoint("/recipes/findByIngredients", q), &out); err != nil {
		return nil, fmt.Errorf("spoonacular: find by ingredients: %w", err)
	}
	return out, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	q.Set("apiKey", c.apiKey)
	return c.baseURL + path + "?" + q.Encode()
}
