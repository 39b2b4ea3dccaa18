package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pantryfy/internal/ingredient"
)

// DefaultServings is used when a source does not state a serving count.
const DefaultServings = 4

// SourceKind records where a recipe's data came from.
type SourceKind string

const (
	SourceStructuredAPI SourceKind = "structured-api"
	SourceLanguageModel SourceKind = "language-model"
	SourceManual        SourceKind = "manual"
)

// IngredientLine is one ingredient of a recipe.
type IngredientLine struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Raw      string  `json:"raw"`
}

// ComposeRaw builds a display line from the structured fields. A zero
// quantity is left out.
func (l IngredientLine) ComposeRaw() string {
	var parts []string
	if l.Quantity > 0 {
		parts = append(parts, ingredient.FormatQuantity(l.Quantity))
	}
	if u := strings.TrimSpace(l.Unit); u != "" {
		parts = append(parts, u)
	}
	if n := strings.TrimSpace(l.Name); n != "" {
		parts = append(parts, n)
	}
	return strings.Join(parts, " ")
}

// FromParsed converts a parsed free-text line into an IngredientLine.
func FromParsed(p ingredient.Parsed) IngredientLine {
	return IngredientLine{Name: p.Name, Quantity: p.Quantity, Unit: p.Unit, Raw: p.Raw}
}

// IngredientList is stored as a JSONB column.
type IngredientList []IngredientLine

// Value implements driver.Valuer.
func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *IngredientList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for ingredients: %T", src)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}
	return nil
}

// Recipe is the result of a successful extraction or a manual entry.
type Recipe struct {
	Title       string         `json:"title" db:"title" validate:"required"`
	Servings    int            `json:"servings" db:"servings" validate:"gte=1"`
	ImageURL    string         `json:"imageUrl,omitempty" db:"image_url"`
	Ingredients IngredientList `json:"ingredients" db:"ingredients" validate:"min=1,dive"`
	Source      SourceKind     `json:"source" db:"source" validate:"omitempty,oneof=structured-api language-model manual"`
}

// Usable reports whether the recipe has a title and at least one
// ingredient, the only shape ever reported as an extraction success.
func (r *Recipe) Usable() bool {
	return r != nil && strings.TrimSpace(r.Title) != "" && len(r.Ingredients) > 0
}

// SavedRecipe is a Recipe that belongs to an owner.
type SavedRecipe struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"ownerId" db:"owner_id"`
	Recipe
	SourceURL string    `json:"sourceUrl,omitempty" db:"source_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ErrNotFound is returned when a saved recipe does not exist.
var ErrNotFound = errors.New("recipe not found")

// ErrInvalidRecipe wraps validation failures.
var ErrInvalidRecipe = errors.New("invalid recipe")
