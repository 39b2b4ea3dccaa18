package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pantryfy/internal/ingredient"
	"pantryfy/internal/planner"
)

// GetMealPlans lists the caller's plans between the optional start and end
// dates, inclusive.
func (h *Handler) GetMealPlans(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	plans, err := h.PlannerStore.GetMealPlans(ctx, owner(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetWeek returns the seven dates of the week containing date, starting on
// Monday. Today is used when date is absent.
func (h *Handler) GetWeek(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(planner.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	c.JSON(http.StatusOK, gin.H{"dates": planner.WeekDates(day)})
}

type mealPlanRequest struct {
	Date     string           `json:"date" binding:"required"`
	MealType planner.MealType `json:"meal_type" binding:"required"`
	RecipeID string           `json:"recipe_id" binding:"required"`
}

// SetMealPlan assigns one of the caller's recipes to a meal.
func (h *Handler) SetMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	ownerID := owner(c)
	if _, err := h.ownedRecipe(ctx, ownerID, req.RecipeID); err != nil {
		h.fail(c, err)
		return
	}

	plan, err := h.PlannerStore.SetMealPlan(ctx, &planner.MealPlan{
		OwnerID:  ownerID,
		Date:     req.Date,
		MealType: req.MealType,
		RecipeID: req.RecipeID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) DeleteMealPlan(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.PlannerStore.DeleteMealPlan(ctx, owner(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPantry(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	items, err := h.PlannerStore.GetPantryItems(ctx, owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type pantryRequest struct {
	Name     string              `json:"name" binding:"required"`
	Category ingredient.Category `json:"category"`
}

// AddPantryItem stores an item. The category is inferred from the name when
// omitted.
func (h *Handler) AddPantryItem(c *gin.Context) {
	var req pantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	item, err := h.PlannerStore.AddPantryItem(ctx, &planner.PantryItem{
		OwnerID:  owner(c),
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) DeletePantryItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.PlannerStore.DeletePantryItem(ctx, owner(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
