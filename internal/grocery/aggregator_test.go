package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryfy/internal/ingredient"
	"pantryfy/internal/recipe"
)

func saved(title string, lines ...recipe.IngredientLine) recipe.SavedRecipe {
	return recipe.SavedRecipe{Recipe: recipe.Recipe{Title: title, Servings: 4, Ingredients: lines}}
}

func line(name string, qty float64, unit string) recipe.IngredientLine {
	return recipe.IngredientLine{Name: name, Quantity: qty, Unit: unit}
}

func findItem(t *testing.T, items []Item, key string) Item {
	t.Helper()
	for _, item := range items {
		if item.Key == key {
			return item
		}
	}
	require.Failf(t, "item not found", "key %q", key)
	return Item{}
}

func TestAggregate_SumsMatchingUnits(t *testing.T) {
	items := Aggregate([]recipe.SavedRecipe{
		saved("Salad", line("Tomatoes", 2, "")),
		saved("Sauce", line("fresh tomatoes", 3, "")),
	})

	require.Len(t, items, 1)
	assert.Equal(t, "tomato", items[0].Key)
	assert.Equal(t, "Tomatoes", items[0].DisplayName)
	assert.Equal(t, 5.0, items[0].Quantity)
	assert.Equal(t, ingredient.CategoryProduce, items[0].Category)
	assert.Equal(t, []string{"Salad", "Sauce"}, items[0].FromRecipes)
}

func TestAggregate_MismatchedUnitsKeepFirstQuantity(t *testing.T) {
	items := Aggregate([]recipe.SavedRecipe{
		saved("Cake", line("flour", 2, "cup")),
		saved("Bread", line("flour", 500, "g")),
	})

	require.Len(t, items, 1)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.Equal(t, "cup", items[0].Unit)
	assert.Equal(t, []string{"Cake", "Bread"}, items[0].FromRecipes)
}

func TestAggregate_RecipeTitlesAreDeduplicated(t *testing.T) {
	items := Aggregate([]recipe.SavedRecipe{
		saved("Omelette", line("egg", 2, ""), line("eggs", 1, "")),
	})

	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, []string{"Omelette"}, items[0].FromRecipes)
}

func TestAggregate_SortedByCategoryThenKey(t *testing.T) {
	items := Aggregate([]recipe.SavedRecipe{
		saved("Dinner",
			line("salt", 1, "tsp"),
			line("onion", 1, ""),
			line("milk", 1, "cup"),
			line("apple", 2, ""),
			line("chicken breast", 1, "lb"),
		),
	})

	var keys []string
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	// dairy < meat < produce < spices
	assert.Equal(t, []string{"milk", "chicken breast", "apple", "onion", "salt"}, keys)
}

func TestAggregate_RerunIsIdentical(t *testing.T) {
	recipes := []recipe.SavedRecipe{
		saved("Pasta", line("pasta", 2, "cup"), line("olive oil", 1, "tbsp"), line("garlic cloves", 3, "")),
		saved("Soup", line("garlic clove", 1, ""), line("chicken stock", 4, "cup"), line("Olive Oil", 2, "tbsp")),
	}

	first := Aggregate(recipes)
	first[0].Checked = true
	first[1].HaveAtHome = true

	second := Aggregate(recipes)
	third := Aggregate(recipes)
	assert.Equal(t, second, third)
	for _, item := range second {
		assert.False(t, item.Checked)
		assert.False(t, item.HaveAtHome)
	}
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.Equal(t, first[i].Quantity, second[i].Quantity)
		assert.Equal(t, first[i].Category, second[i].Category)
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]recipe.SavedRecipe{saved("Nothing")}))
}

func TestGroupByCategory(t *testing.T) {
	items := []Item{
		{Key: "salt", Category: ingredient.CategorySpices},
		{Key: "apple", Category: ingredient.CategoryProduce},
		{Key: "onion", Category: ingredient.CategoryProduce},
		{Key: "mystery", Category: "unknown"},
	}

	groups := GroupByCategory(items)
	require.Len(t, groups, 3)
	assert.Equal(t, ingredient.CategoryProduce, groups[0].Category)
	assert.Equal(t, "Produce", groups[0].Label)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "apple", groups[0].Items[0].Key)
	assert.Equal(t, ingredient.CategorySpices, groups[1].Category)
	assert.Equal(t, ingredient.CategoryOther, groups[2].Category)
}

func TestClipboardText(t *testing.T) {
	items := []Item{
		{Key: "flour", DisplayName: "flour", Quantity: 2, Unit: "cup"},
		{Key: "egg", DisplayName: "Eggs", Quantity: 3},
		{Key: "salt", DisplayName: "salt", Quantity: 0, Unit: ""},
		{Key: "milk", DisplayName: "milk", Quantity: 1, Unit: "cup", Checked: true},
		{Key: "butter", DisplayName: "butter", Quantity: 1.5, Unit: "tbsp", HaveAtHome: true},
	}

	assert.Equal(t, "2 cup flour\n3 Eggs\nsalt", ClipboardText(items))
	assert.Equal(t, "", ClipboardText(nil))
}

func TestVisible(t *testing.T) {
	items := []Item{{Key: "a"}, {Key: "b", HaveAtHome: true}, {Key: "c", Checked: true}}
	visible := Visible(items)
	require.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].Key)
	assert.Equal(t, "c", visible[1].Key)
}
