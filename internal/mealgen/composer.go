package mealgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

const maxVegetablesPerMeal = 2

// ComposeMeal picks a balanced ingredient set for one slot from the pool.
// Picks within a category are drawn from rng, so the same pool order and
// rng state always give the same meal.
func ComposeMeal(pool []EnhancedIngredient, slot catalog.MealSlot, rng *rand.Rand) ([]EnhancedIngredient, error) {
	eligible := filterSlot(pool, slot)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%s: %w", slot, ErrInsufficientIngredients)
	}

	proteins := proteinCandidates(eligible)
	if len(proteins) == 0 {
		return nil, fmt.Errorf("%s: %w", slot, ErrUnbalancedSelection)
	}

	byCat := groupByCategory(eligible)
	main := slot == catalog.SlotLunch || slot == catalog.SlotDinner

	out := []EnhancedIngredient{pick(proteins, rng)}
	if slot != catalog.SlotSnack {
		if c := byCat[catalog.CategoryCarb]; len(c) > 0 {
			out = append(out, pick(c, rng))
		}
	}
	if main {
		out = append(out, pickDistinct(byCat[catalog.CategoryVegetable], maxVegetablesPerMeal, rng)...)
	} else if f := byCat[catalog.CategoryFruit]; len(f) > 0 {
		out = append(out, pick(f, rng))
	}
	if f := byCat[catalog.CategoryFat]; len(f) > 0 {
		out = append(out, pick(f, rng))
	}
	if main {
		if m := byCat[catalog.CategoryMisc]; len(m) > 0 {
			out = append(out, pick(m, rng))
		}
	}
	return out, nil
}

func filterSlot(pool []EnhancedIngredient, slot catalog.MealSlot) []EnhancedIngredient {
	var out []EnhancedIngredient
	for _, ing := range pool {
		if ing.AllowedIn(slot) {
			out = append(out, ing)
		}
	}
	return out
}

// proteinCandidates returns protein-category items, or dairy that classifies
// as protein when there are none.
func proteinCandidates(eligible []EnhancedIngredient) []EnhancedIngredient {
	var proteins, dairy []EnhancedIngredient
	for _, ing := range eligible {
		switch {
		case ing.Category == catalog.CategoryProtein:
			proteins = append(proteins, ing)
		case ing.Category == catalog.CategoryDairy && ing.Role == RoleProtein:
			dairy = append(dairy, ing)
		}
	}
	if len(proteins) > 0 {
		return proteins
	}
	return dairy
}

func groupByCategory(items []EnhancedIngredient) map[catalog.Category][]EnhancedIngredient {
	out := make(map[catalog.Category][]EnhancedIngredient)
	for _, it := range items {
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}

func pick(items []EnhancedIngredient, rng *rand.Rand) EnhancedIngredient {
	return items[rng.IntN(len(items))]
}

func pickDistinct(items []EnhancedIngredient, n int, rng *rand.Rand) []EnhancedIngredient {
	rest := append([]EnhancedIngredient(nil), items...)
	var out []EnhancedIngredient
	for len(out) < n && len(rest) > 0 {
		i := rng.IntN(len(rest))
		out = append(out, rest[i])
		rest = append(rest[:i], rest[i+1:]...)
	}
	return out
}
