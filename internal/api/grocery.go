package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pantryfy/internal/grocery"
	"pantryfy/internal/recipe"
)

type groceryListRequest struct {
	RecipeIDs []string `json:"recipe_ids" binding:"required,min=1"`
}

type groceryListResponse struct {
	RecipeIDs   []string        `json:"recipeIds"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Groups      []grocery.Group `json:"groups"`
	HaveAtHome  []grocery.Item  `json:"haveAtHome"`
}

func newGroceryListResponse(l grocery.List) groceryListResponse {
	resp := groceryListResponse{
		RecipeIDs:   l.RecipeIDs,
		GeneratedAt: l.GeneratedAt,
		Groups:      grocery.GroupByCategory(grocery.Visible(l.Items)),
		HaveAtHome:  []grocery.Item{},
	}
	if resp.Groups == nil {
		resp.Groups = []grocery.Group{}
	}
	for _, item := range l.Items {
		if item.HaveAtHome {
			resp.HaveAtHome = append(resp.HaveAtHome, item)
		}
	}
	return resp
}

// GenerateGroceryList rebuilds the caller's list from the selected recipes.
// Unknown or foreign recipe ids fail the whole request.
func (h *Handler) GenerateGroceryList(c *gin.Context) {
	var req groceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	ownerID := owner(c)
	recipes := make([]recipe.SavedRecipe, 0, len(req.RecipeIDs))
	for _, id := range req.RecipeIDs {
		r, err := h.ownedRecipe(ctx, ownerID, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		recipes = append(recipes, *r)
	}

	l := h.GroceryLists.Replace(ownerID, req.RecipeIDs, grocery.Aggregate(recipes))
	c.JSON(http.StatusOK, newGroceryListResponse(l))
}

// GetGroceryList returns the caller's list grouped by category.
func (h *Handler) GetGroceryList(c *gin.Context) {
	c.JSON(http.StatusOK, newGroceryListResponse(h.GroceryLists.Get(owner(c))))
}

// GetGroceryListText returns the items still to buy as plain text.
func (h *Handler) GetGroceryListText(c *gin.Context) {
	c.String(http.StatusOK, grocery.ClipboardText(h.GroceryLists.Get(owner(c)).Items))
}

// ToggleItem handles POST /grocery-list/items/<key>/checked and
// /grocery-list/items/<key>/have-at-home, flipping the named flag.
func (h *Handler) ToggleItem(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("keyAction"), "/")

	var toggle func(owner, key string) (grocery.Item, error)
	key, ok := strings.CutSuffix(path, "/checked")
	if ok {
		toggle = h.GroceryLists.ToggleChecked
	} else if key, ok = strings.CutSuffix(path, "/have-at-home"); ok {
		toggle = h.GroceryLists.ToggleHaveAtHome
	}
	if !ok || key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown grocery list action"})
		return
	}

	item, err := toggle(owner(c), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ClearGroceryList(c *gin.Context) {
	h.GroceryLists.Clear(owner(c))
	c.Status(http.StatusNoContent)
}
