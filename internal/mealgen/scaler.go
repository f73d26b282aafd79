package mealgen

import (
	"math"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

const (
	minMealScale = 0.5
	maxMealScale = 2.5
)

// ScaleMeal sizes composed ingredients so the meal's calories approach
// mealCalories. Every ingredient is scaled by the same factor, then clamped
// to its own gram bounds.
func ScaleMeal(slot catalog.MealSlot, items []EnhancedIngredient, mealCalories float64) MealPlanEntry {
	var baseline float64
	for _, it := range items {
		baseline += it.Per100g.Calories * it.ServingGrams / 100
	}

	scale := 1.0
	if baseline > 0 {
		scale = mealCalories / baseline
	}
	scale = clamp(scale, minMealScale, maxMealScale)

	entry := MealPlanEntry{Slot: slot, Ingredients: make([]MealIngredient, 0, len(items))}
	for _, it := range items {
		limit := it.maxGrams()
		mi := MealIngredient{
			IngredientID: it.ID,
			Name:         it.Name,
			Category:     it.Category,
			Role:         it.Role,
			MaxGrams:     limit,
			Per100g:      it.Per100g,
		}
		grams := int(math.Round(it.ServingGrams * scale))
		mi.setGrams(clampInt(grams, MinIngredientGrams, limit))
		entry.Ingredients = append(entry.Ingredients, mi)
	}
	entry.recompute()
	return entry
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
