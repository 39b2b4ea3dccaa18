package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryfy/internal/recipe"
)

func TestDecodeDraft(t *testing.T) {
	answer := "```json\n" + `{
		"title": " Pancakes ",
		"servings": "2",
		"ingredients": [
			{"name": "flour", "quantity": "1 1/2", "unit": "cups", "raw": "1 1/2 cups flour"},
			{"name": "milk", "quantity": 0.5, "unit": "cup"},
			{"name": "", "quantity": "to taste", "unit": ""},
			{"name": "sugar", "quantity": -3, "unit": "tbsp"}
		]
	}` + "\n```"

	d, ok := decodeDraft(answer)
	require.True(t, ok)
	assert.Equal(t, "Pancakes", d.Title)
	assert.Equal(t, 2, d.Servings)
	require.Len(t, d.Ingredients, 4)

	assert.Equal(t, recipe.IngredientLine{Name: "flour", Quantity: 1.5, Unit: "cups", Raw: "1 1/2 cups flour"}, d.Ingredients[0])
	assert.Equal(t, "0.5 cup milk", d.Ingredients[1].Raw)
	assert.Equal(t, recipe.IngredientLine{Name: "unknown", Quantity: 0, Unit: "", Raw: "unknown"}, d.Ingredients[2])
	assert.Equal(t, 0.0, d.Ingredients[3].Quantity)
}

func TestDecodeDraft_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":          "I could not find a recipe.",
		"broken json":       `{"title": "Soup", "ingredients": [`,
		"missing title":     `{"servings": 2, "ingredients": [{"name": "salt"}]}`,
		"blank title":       `{"title": "   ", "ingredients": [{"name": "salt"}]}`,
		"no ingredients":    `{"title": "Soup", "ingredients": []}`,
		"ingredients null":  `{"title": "Soup", "ingredients": null}`,
		"wrong field types": `{"title": 12, "ingredients": [{"name": "salt"}]}`,
		"empty":             "",
	}

	for name, answer := range tests {
		t.Run(name, func(t *testing.T) {
			d, ok := decodeDraft(answer)
			assert.False(t, ok)
			assert.Nil(t, d)
		})
	}
}

func TestDecodeDraft_ServingsDefault(t *testing.T) {
	for _, servings := range []string{`0`, `-2`, `null`, `"a few"`, `1e400`, `"Inf"`} {
		d, ok := decodeDraft(`{"title": "Soup", "servings": ` + servings + `, "ingredients": [{"name": "salt"}]}`)
		require.True(t, ok, servings)
		assert.Equal(t, recipe.DefaultServings, d.Servings, servings)
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"2":        2,
		"0.25":     0.25,
		"1/2":      0.5,
		"1 1/2":    1.5,
		" 3 ":      3,
		"1/0":      0,
		"a pinch":  0,
		"1 2 3":    0,
		"":         0,
		"two cups": 0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, parseAmount(in), 1e-9, in)
	}
}

func FuzzDecodeDraft(f *testing.F) {
	f.Add(`{"title":"Soup","servings":2,"ingredients":[{"name":"salt","quantity":1,"unit":"tsp"}]}`)
	f.Add(`{"title":"","ingredients":[{"name":"salt"}]}`)
	f.Add(`{"title":"Soup","ingredients":[]}`)
	f.Add(`{"title":"Soup","servings":"1/0","ingredients":[{"quantity":"NaN"}]}`)
	f.Add(`garbage { "title": "x" } more garbage`)
	f.Add(`}{`)

	f.Fuzz(func(t *testing.T, answer string) {
		d, ok := decodeDraft(answer)
		if !ok {
			assert.Nil(t, d)
			return
		}
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Ingredients)
		assert.GreaterOrEqual(t, d.Servings, 1)
		for _, l := range d.Ingredients {
			assert.NotEmpty(t, l.Name)
			assert.NotEmpty(t, l.Raw)
			assert.GreaterOrEqual(t, l.Quantity, 0.0)
		}
	})
}
