package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantryfy/internal/ingredient"
	"pantryfy/internal/recipe"
)

type extractRequest struct {
	URL string `json:"url" binding:"required"`
}

// Extract runs the extraction pipeline for a URL. Pipeline failures are
// still 200 responses carrying {success:false, error}.
func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), extractTimeout)
	defer cancel()

	c.JSON(http.StatusOK, h.Extractor.ExtractRecipeFromURL(ctx, req.URL))
}

type saveRecipeRequest struct {
	recipe.Recipe
	SourceURL string `json:"sourceUrl"`
}

// SaveRecipe stores a recipe for the caller and returns its id.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	saved := &recipe.SavedRecipe{OwnerID: owner(c), Recipe: req.Recipe, SourceURL: req.SourceURL}
	id, err := h.RecipeStore.SaveRecipe(ctx, saved)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetRecipes lists the caller's recipes.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	recipes, err := h.RecipeStore.GetSavedRecipes(ctx, owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one of the caller's recipes.
func (h *Handler) GetRecipe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	r, err := h.ownedRecipe(ctx, owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteRecipe removes one of the caller's recipes and the meal plans
// that use it.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	id := c.Param("id")
	if _, err := h.ownedRecipe(ctx, owner(c), id); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.RecipeStore.DeleteRecipe(ctx, id); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.PlannerStore.DeleteRecipePlans(ctx, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedRecipe loads a recipe and hides other owners' recipes as not found.
func (h *Handler) ownedRecipe(ctx context.Context, ownerID, id string) (*recipe.SavedRecipe, error) {
	r, err := h.RecipeStore.GetSavedRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != ownerID {
		return nil, recipe.ErrNotFound
	}
	return r, nil
}

type parseIngredientsRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// ParseIngredients turns free-text lines into ingredient lines for manual
// entry. Blank lines are dropped.
func (h *Handler) ParseIngredients(c *gin.Context) {
	var req parseIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lines := []recipe.IngredientLine{}
	for _, l := range req.Lines {
		p := ingredient.ParseLine(l)
		if p.Raw == "" {
			continue
		}
		lines = append(lines, recipe.FromParsed(p))
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": lines})
}
