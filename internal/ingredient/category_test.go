package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := map[string]Category{
		"tomato":          CategoryProduce,
		"Red Onion":       CategoryProduce,
		"milk":            CategoryDairy,
		"cheddar":         CategoryDairy,
		"chicken breast":  CategoryMeat,
		"salmon":          CategoryMeat,
		"sourdough bread": CategoryBakery,
		"gelato":          CategoryFrozen,
		"flour":           CategoryPantry,
		"soy sauce":       CategoryPantry,
		"salt":            CategorySpices,
		"cumin":           CategorySpices,
		"water":           CategoryBeverages,
		"xanthan gum":     CategoryOther,
		"":                CategoryOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, Categorize(in), "input %q", in)
	}
}

func TestCategorize_FirstCategoryWins(t *testing.T) {
	// "black pepper" hits produce's "pepper" before spices is consulted.
	assert.Equal(t, CategoryProduce, Categorize("black pepper"))
	// "ice cream" hits dairy's "cream" before frozen.
	assert.Equal(t, CategoryDairy, Categorize("ice cream"))
	// Substring containment, not tokens.
	assert.Equal(t, CategoryProduce, Categorize("limestone"))
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Produce", CategoryProduce.Label())
	assert.Equal(t, "Meat & Fish", CategoryMeat.Label())
	assert.Equal(t, "Other", CategoryOther.Label())
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategorySpices.Valid())
	assert.False(t, Category("snacks").Valid())
}
