package mealgen

import (
	"sort"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

// GroceryItem is the weekly amount of one ingredient.
type GroceryItem struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Category     catalog.Category `json:"category"`
	TotalGrams   int              `json:"total_grams"`
}

// AggregateGroceries sums ingredient grams over every meal of the week.
// Items are ordered by category, then name, then id.
func AggregateGroceries(week WeeklyPlanResult) []GroceryItem {
	byID := make(map[string]*GroceryItem)
	for _, day := range week.Days {
		for _, meal := range day.Plan.OrderedMeals() {
			if meal.Placeholder {
				continue
			}
			for _, ing := range meal.Ingredients {
				item, ok := byID[ing.IngredientID]
				if !ok {
					item = &GroceryItem{IngredientID: ing.IngredientID, Name: ing.Name, Category: ing.Category}
					byID[ing.IngredientID] = item
				}
				item.TotalGrams += ing.Grams
			}
		}
	}

	out := make([]GroceryItem, 0, len(byID))
	for _, item := range byID {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.IngredientID < b.IngredientID
	})
	return out
}
