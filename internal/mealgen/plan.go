package mealgen

import (
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

// slotSharePercent is each meal's share of daily calories; the values add up to 100.
var slotSharePercent = map[catalog.MealSlot]int{
	catalog.SlotBreakfast: 25,
	catalog.SlotLunch:     35,
	catalog.SlotDinner:    30,
	catalog.SlotSnack:     10,
}

// SlotShare returns the fraction of daily calories assigned to slot.
func SlotShare(slot catalog.MealSlot) float64 {
	return float64(slotSharePercent[slot]) / 100
}

// MealIngredient is one ingredient with a concrete serving inside a meal.
type MealIngredient struct {
	IngredientID string           `json:"ingredient_id"`
	Name         string           `json:"name"`
	Category     catalog.Category `json:"category"`
	Role         Role             `json:"role"`
	Grams        int              `json:"grams"`
	MaxGrams     int              `json:"max_grams"`
	Per100g      catalog.Macros   `json:"-"`
	Macros       Macros           `json:"macros"`
}

func (mi *MealIngredient) setGrams(g int) {
	mi.Grams = g
	mi.Macros = macrosForGrams(mi.Per100g, float64(g))
}

// MealPlanEntry is a single meal of a day. Placeholder entries carry no
// ingredients and explain why the slot could not be filled.
type MealPlanEntry struct {
	Slot        catalog.MealSlot `json:"slot"`
	Title       string           `json:"title"`
	Recipe      string           `json:"recipe"`
	Ingredients []MealIngredient `json:"ingredients"`
	Macros      Macros           `json:"macros"`
	Placeholder bool             `json:"placeholder,omitempty"`
	Message     string           `json:"message,omitempty"`
}

func (e *MealPlanEntry) recompute() {
	var m Macros
	for _, ing := range e.Ingredients {
		m = m.Add(ing.Macros)
	}
	e.Macros = m
}

func placeholderEntry(slot catalog.MealSlot, msg string) MealPlanEntry {
	return MealPlanEntry{
		Slot:        slot,
		Ingredients: []MealIngredient{},
		Placeholder: true,
		Message:     msg,
	}
}

// dayPlan is the mutable working state of one day during convergence.
type dayPlan struct {
	meals []MealPlanEntry
}

// Clone returns an independent copy; ingredients are values so copying the
// slices is enough.
func (p *dayPlan) Clone() *dayPlan {
	out := &dayPlan{meals: make([]MealPlanEntry, len(p.meals))}
	for i, m := range p.meals {
		m.Ingredients = append([]MealIngredient(nil), m.Ingredients...)
		out.meals[i] = m
	}
	return out
}

func (p *dayPlan) totals() Macros {
	var t Macros
	for _, m := range p.meals {
		t = t.Add(m.Macros)
	}
	return t
}

// ConstraintViolation records an adjustment that wanted more of an
// ingredient than its per-meal cap allows.
type ConstraintViolation struct {
	IngredientID   string           `json:"ingredient_id"`
	Name           string           `json:"name"`
	MaxGrams       int              `json:"max_grams"`
	RequestedGrams int              `json:"requested_grams"`
	Slot           catalog.MealSlot `json:"meal_slot"`
}

// ConvergenceConstraints accumulates violations over one day's loop.
type ConvergenceConstraints struct {
	Hit     bool
	Details []ConstraintViolation
}

func (c *ConvergenceConstraints) record(v ConstraintViolation) {
	c.Hit = true
	for i, d := range c.Details {
		if d.IngredientID == v.IngredientID && d.Slot == v.Slot {
			if v.RequestedGrams > d.RequestedGrams {
				c.Details[i].RequestedGrams = v.RequestedGrams
			}
			return
		}
	}
	c.Details = append(c.Details, v)
}

// ConvergenceInfo describes how the day's loop ended.
type ConvergenceInfo struct {
	Converged         bool                  `json:"converged"`
	Iterations        int                   `json:"iterations"`
	ConstraintHit     bool                  `json:"realism_constraint_hit"`
	ConstraintDetails []ConstraintViolation `json:"constraints_hit_details"`
	Reason            string                `json:"reason,omitempty"`
	Score             float64               `json:"variance_score"`
}

// DailyPlanResult is a finished day.
type DailyPlanResult struct {
	Meals           map[catalog.MealSlot]MealPlanEntry `json:"meals"`
	TotalMacros     Macros                             `json:"total_macros"`
	TargetMacros    MacroTargets                       `json:"target_macros"`
	Variance        Macros                             `json:"variance"`
	ConvergenceInfo ConvergenceInfo                    `json:"convergence_info"`
}

// OrderedMeals returns the day's meals in slot order.
func (d DailyPlanResult) OrderedMeals() []MealPlanEntry {
	out := make([]MealPlanEntry, 0, len(d.Meals))
	for _, slot := range catalog.AllSlots() {
		if m, ok := d.Meals[slot]; ok {
			out = append(out, m)
		}
	}
	return out
}

// DayPlan is one day of a week.
type DayPlan struct {
	DayNumber int             `json:"day_number"`
	DayName   string          `json:"day_name"`
	Plan      DailyPlanResult `json:"plan"`
}

// WeeklyPlanResult is seven consecutive days plus weekly aggregates.
type WeeklyPlanResult struct {
	Days               []DayPlan    `json:"days"`
	WeeklyTotalMacros  Macros       `json:"weekly_total_macros"`
	WeeklyTargetMacros MacroTargets `json:"weekly_target_macros"`
	WeeklyVariance     Macros       `json:"weekly_variance"`
	Seed               uint64       `json:"seed"`
}
