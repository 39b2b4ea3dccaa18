// Package planner keeps each owner's weekly meal plan and pantry.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pantryfy/internal/ingredient"
)

// DateLayout is the calendar date format used for plans.
const DateLayout = "2006-01-02"

// MealType is a slot in a day's plan.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	return m == Breakfast || m == Lunch || m == Dinner
}

// MealPlan assigns a saved recipe to one meal of one day.
type MealPlan struct {
	ID       string   `json:"id" db:"id"`
	OwnerID  string   `json:"ownerId" db:"owner_id"`
	Date     string   `json:"date" db:"date"`
	MealType MealType `json:"mealType" db:"meal_type"`
	RecipeID string   `json:"recipeId" db:"recipe_id"`
}

// PantryItem is an ingredient the owner has at home.
type PantryItem struct {
	ID        string              `json:"id" db:"id"`
	OwnerID   string              `json:"ownerId" db:"owner_id"`
	Name      string              `json:"name" db:"name"`
	Category  ingredient.Category `json:"category" db:"category"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
}

var (
	// ErrNotFound is returned when a plan or pantry item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid wraps malformed plans and pantry items.
	ErrInvalid = errors.New("invalid input")
)

func (p *MealPlan) validate() error {
	if p.OwnerID == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, p.Date)
	}
	if !p.MealType.Valid() {
		return fmt.Errorf("%w: meal type %q", ErrInvalid, p.MealType)
	}
	if p.RecipeID == "" {
		return fmt.Errorf("%w: recipe is required", ErrInvalid)
	}
	return nil
}

// prepare trims the name and fills the category from it when unset.
func (i *PantryItem) prepare() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.OwnerID == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if i.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if i.Category == "" {
		i.Category = ingredient.Categorize(i.Name)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalid, i.Category)
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	return nil
}

// WeekDates returns the seven dates of the Monday-started week containing day.
func WeekDates(day time.Time) []string {
	offset := (int(day.Weekday()) + 6) % 7
	monday := time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, day.Location())
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}
