package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pantryfy/internal/platform/spoonacular"
)

// Search finds recipes that use the given comma-separated ingredients.
func (h *Handler) Search(c *gin.Context) {
	var ingredients []string
	for _, name := range strings.Split(c.Query("ingredients"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			ingredients = append(ingredients, name)
		}
	}

	opts := spoonacular.SearchOptions{
		Cuisine: c.Query("cuisine"),
		Diet:    c.Query("diet"),
	}
	if raw := c.Query("max_time"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_time must be a number of minutes"})
			return
		}
		opts.MaxTime = minutes
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	results, err := h.Searcher.Search(ctx, ingredients, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

type suggestionRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Suggest proposes one dish for the given ingredients.
func (h *Handler) Suggest(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), suggestTimeout)
	defer cancel()

	s, err := h.Suggester.Suggest(ctx, req.Ingredients)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
