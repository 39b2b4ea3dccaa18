package extract

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"pantryfy/internal/llm"
	"pantryfy/internal/recipe"
)

// recipeSchema is appended to every extraction prompt.
const recipeSchema = `Return JSON only:
{"title": "recipe name", "servings": 4, "ingredients": [{"name": "flour", "quantity": 2, "unit": "cups", "raw": "2 cups all-purpose flour"}]}`

// Draft is a recipe as produced by one extraction stage, before the
// orchestrator stamps its source and image.
type Draft struct {
	Title       string
	Servings    int
	ImageURL    string
	Ingredients []recipe.IngredientLine
}

// Usable reports whether the draft has a title and at least one ingredient.
func (d *Draft) Usable() bool {
	return d != nil && strings.TrimSpace(d.Title) != "" && len(d.Ingredients) > 0
}

// Recipe converts the draft into a Recipe from the given source.
func (d *Draft) Recipe(source recipe.SourceKind) recipe.Recipe {
	lines := make(recipe.IngredientList, len(d.Ingredients))
	copy(lines, d.Ingredients)
	return recipe.Recipe{
		Title:       d.Title,
		Servings:    d.Servings,
		ImageURL:    d.ImageURL,
		Ingredients: lines,
		Source:      source,
	}
}

// number accepts a JSON number, a numeric string such as "2", "0.5",
// "1/2" or "1 1/2", or anything else as 0.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*n = number(parseAmount(s))
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = number(f)
	}
	return nil
}

// parseAmount reads a decimal, fraction or mixed number; anything else is 0.
func parseAmount(s string) float64 {
	var total float64
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0
	}
	for _, f := range fields {
		if num, den, ok := strings.Cut(f, "/"); ok {
			a, errA := strconv.ParseFloat(num, 64)
			b, errB := strconv.ParseFloat(den, 64)
			if errA != nil || errB != nil || b == 0 {
				return 0
			}
			total += a / b
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0
		}
		total += v
	}
	return total
}

// sane clamps a decoded amount to a finite, non-negative value.
func sane(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

type modelIngredient struct {
	Name     string `json:"name"`
	Quantity number `json:"quantity"`
	Unit     string `json:"unit"`
	Raw      string `json:"raw"`
}

type modelRecipe struct {
	Title       string            `json:"title"`
	Servings    number            `json:"servings"`
	Ingredients []modelIngredient `json:"ingredients"`
}

// decodeDraft parses a model answer. Any malformed answer, or one without
// a title or ingredients, yields (nil, false).
func decodeDraft(text string) (*Draft, bool) {
	var m modelRecipe
	if err := llm.Decode(text, &m); err != nil {
		return nil, false
	}

	d := &Draft{
		Title:    strings.TrimSpace(m.Title),
		Servings: servingsOrDefault(float64(m.Servings)),
	}
	for _, in := range m.Ingredients {
		d.Ingredients = append(d.Ingredients, ingredientLine(in.Name, float64(in.Quantity), in.Unit, in.Raw))
	}
	if !d.Usable() {
		return nil, false
	}
	return d, true
}

// ingredientLine builds a line with the defaults applied to every source:
// a missing name becomes "unknown" and a missing raw line is composed from
// the structured fields.
func ingredientLine(name string, quantity float64, unit, raw string) recipe.IngredientLine {
	line := recipe.IngredientLine{
		Name:     strings.TrimSpace(name),
		Quantity: sane(quantity),
		Unit:     strings.TrimSpace(unit),
		Raw:      strings.TrimSpace(raw),
	}
	if line.Name == "" {
		line.Name = "unknown"
	}
	if line.Raw == "" {
		line.Raw = line.ComposeRaw()
	}
	return line
}

func servingsOrDefault(f float64) int {
	f = math.Round(sane(f))
	if f < 1 || f > math.MaxInt32 {
		return recipe.DefaultServings
	}
	return int(f)
}
