package mealgen

import (
	"math"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

// MinIngredientGrams is the smallest amount of any ingredient in a finished meal.
const MinIngredientGrams = 10

// GramRange is an inclusive range of grams.
type GramRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PortionLimit bounds how much of one ingredient a single meal may hold.
type PortionLimit struct {
	MaxGramsPerMeal float64   `json:"max_grams_per_meal"`
	PreferredRange  GramRange `json:"preferred_range"`
}

type rolePortion struct {
	fallbackMax float64
	// grams of the role's macro per kg of bodyweight per meal; 0 = none
	perKgCeiling float64
	preferred    GramRange
}

var rolePortions = map[Role]rolePortion{
	RoleProtein:   {fallbackMax: 225, perKgCeiling: 0.6, preferred: GramRange{Min: 100, Max: 200}},
	RoleCarb:      {fallbackMax: 400, perKgCeiling: 1.5, preferred: GramRange{Min: 50, Max: 250}},
	RoleFat:       {fallbackMax: 70, perKgCeiling: 0.4, preferred: GramRange{Min: 5, Max: 30}},
	RoleSecondary: {fallbackMax: 300, preferred: GramRange{Min: 50, Max: 200}},
}

// PortionLimits returns the per-meal cap for an ingredient. A bodyweight of
// zero or less means unknown. The bodyweight-derived cap never exceeds the
// role fallback.
func PortionLimits(ing catalog.Ingredient, role Role, bodyweightKg float64) PortionLimit {
	rp, ok := rolePortions[role]
	if !ok {
		rp = rolePortions[RoleSecondary]
	}
	limit := PortionLimit{MaxGramsPerMeal: rp.fallbackMax, PreferredRange: rp.preferred}

	if bodyweightKg <= 0 || role == RoleSecondary || rp.perKgCeiling <= 0 {
		return limit
	}

	var per100 float64
	switch role {
	case RoleProtein:
		per100 = ing.Per100g.Protein
	case RoleCarb:
		per100 = ing.Per100g.Carbs
	case RoleFat:
		per100 = ing.Per100g.Fat
	}
	if per100 <= 0 {
		return limit
	}

	byWeight := rp.perKgCeiling * bodyweightKg / per100 * 100
	limit.MaxGramsPerMeal = math.Min(byWeight, rp.fallbackMax)
	return limit
}

// EnhancedIngredient is a catalog entry annotated for one generation call.
type EnhancedIngredient struct {
	catalog.Ingredient
	Role            Role      `json:"role"`
	MaxGramsPerMeal float64   `json:"max_grams_per_meal"`
	PreferredRange  GramRange `json:"preferred_range"`
}

// Enhance classifies an ingredient and attaches its portion limits.
func Enhance(ing catalog.Ingredient, bodyweightKg float64) EnhancedIngredient {
	role := ClassifyRole(ing.Per100g)
	limit := PortionLimits(ing, role, bodyweightKg)
	return EnhancedIngredient{
		Ingredient:      ing,
		Role:            role,
		MaxGramsPerMeal: limit.MaxGramsPerMeal,
		PreferredRange:  limit.PreferredRange,
	}
}

// maxGrams is the integer cap used for concrete servings.
func (e EnhancedIngredient) maxGrams() int {
	m := int(math.Floor(e.MaxGramsPerMeal))
	if m < MinIngredientGrams {
		m = MinIngredientGrams
	}
	return m
}
