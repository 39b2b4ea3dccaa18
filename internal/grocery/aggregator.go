// Package grocery builds categorized shopping lists from saved recipes.
package grocery

import (
	"cmp"
	"slices"
	"strings"

	"pantryfy/internal/ingredient"
	"pantryfy/internal/recipe"
)

// Item is one shopping-list entry. Key is the normalized ingredient name
// and is unique within a list.
type Item struct {
	Key         string              `json:"key"`
	DisplayName string              `json:"displayName"`
	Quantity    float64             `json:"quantity"`
	Unit        string              `json:"unit"`
	Category    ingredient.Category `json:"category"`
	FromRecipes []string            `json:"fromRecipes"`
	Checked     bool                `json:"checked"`
	HaveAtHome  bool                `json:"haveAtHome"`
}

// Group is the items of one category.
type Group struct {
	Category ingredient.Category `json:"category"`
	Label    string              `json:"label"`
	Items    []Item              `json:"items"`
}

// Aggregate merges the ingredients of recipes into a fresh list. Lines that
// normalize to the same key share one item; their quantities are summed
// only when the units are identical. The result is sorted by category and
// then by key, and every item starts unchecked.
func Aggregate(recipes []recipe.SavedRecipe) []Item {
	index := make(map[string]int)
	var items []Item

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := ingredient.Normalize(ing.Name)
			if i, ok := index[key]; ok {
				existing := &items[i]
				if existing.Unit == ing.Unit {
					existing.Quantity += ing.Quantity
				}
				if !slices.Contains(existing.FromRecipes, r.Title) {
					existing.FromRecipes = append(existing.FromRecipes, r.Title)
				}
				continue
			}

			index[key] = len(items)
			items = append(items, Item{
				Key:         key,
				DisplayName: ing.Name,
				Quantity:    ing.Quantity,
				Unit:        ing.Unit,
				Category:    ingredient.Categorize(key),
				FromRecipes: []string{r.Title},
			})
		}
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return items
}

// GroupByCategory groups items in category declaration order and drops
// empty categories. Item order within a group is preserved.
func GroupByCategory(items []Item) []Group {
	buckets := make(map[ingredient.Category][]Item)
	for _, item := range items {
		cat := item.Category
		if !cat.Valid() {
			cat = ingredient.CategoryOther
		}
		buckets[cat] = append(buckets[cat], item)
	}

	var groups []Group
	for _, cat := range ingredient.Categories {
		if len(buckets[cat]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: cat, Label: cat.Label(), Items: buckets[cat]})
	}
	return groups
}

// Visible drops the items marked as already at home.
func Visible(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if !item.HaveAtHome {
			out = append(out, item)
		}
	}
	return out
}

// ClipboardText renders the items still to buy, one per line.
func ClipboardText(items []Item) string {
	var lines []string
	for _, item := range items {
		if item.Checked || item.HaveAtHome {
			continue
		}
		var parts []string
		if item.Quantity > 0 {
			parts = append(parts, ingredient.FormatQuantity(item.Quantity))
		}
		if item.Unit != "" {
			parts = append(parts, item.Unit)
		}
		parts = append(parts, item.DisplayName)
		lines = append(lines, strings.TrimSpace(strings.Join(parts, " ")))
	}
	return strings.Join(lines, "\n")
}
