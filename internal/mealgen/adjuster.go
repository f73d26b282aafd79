package mealgen

import "math"

// MinAdjustmentGrams is the smallest gram change the adjuster will apply.
const MinAdjustmentGrams = 5

// adjustmentPriority is fixed; deficits are never reordered by size.
var adjustmentPriority = []Macro{MacroProtein, MacroCarbs, MacroFat}

type adjuster struct {
	targets     MacroTargets
	constraints *ConvergenceConstraints
}

// pass runs one correction over every out-of-tolerance macro and reports
// whether any gram amount changed.
func (a *adjuster) pass(p *dayPlan, report ToleranceReport) bool {
	changed := false
	for _, k := range adjustmentPriority {
		if !report.OutOfTolerance[k] {
			continue
		}
		if a.adjustMacro(p, k) {
			changed = true
		}
	}
	return changed
}

func (a *adjuster) adjustMacro(p *dayPlan, k Macro) bool {
	role, ok := roleForMacro(k)
	if !ok {
		return false
	}
	target := a.targets.get(k)
	threshold := Tolerances[k] * target
	deficit := target - p.totals().Get(k)
	changed := false

	for mi := range p.meals {
		if math.Abs(deficit) <= threshold {
			break
		}
		meal := &p.meals[mi]
		if meal.Placeholder {
			continue
		}

		candidates := matchingIngredients(meal, role, k)
		if len(candidates) == 0 {
			continue
		}

		applied, hit := a.nudge(meal, candidates[0], k, deficit)
		deficit -= applied
		if applied != 0 {
			changed = true
		}
		if hit && len(candidates) > 1 && math.Abs(deficit) > threshold {
			applied, _ = a.nudge(meal, candidates[1], k, deficit)
			deficit -= applied
			if applied != 0 {
				changed = true
			}
		}
	}
	return changed
}

// nudge moves one ingredient toward closing deficit and returns the macro
// amount actually added (negative when grams were removed).
func (a *adjuster) nudge(meal *MealPlanEntry, idx int, k Macro, deficit float64) (float64, bool) {
	ing := &meal.Ingredients[idx]
	pg := perGram(ing.Per100g, k)

	requested := float64(ing.Grams) + deficit/pg
	hit := false
	if requested > float64(ing.MaxGrams) {
		hit = true
		a.constraints.record(ConstraintViolation{
			IngredientID:   ing.IngredientID,
			Name:           ing.Name,
			MaxGrams:       ing.MaxGrams,
			RequestedGrams: int(math.Round(requested)),
			Slot:           meal.Slot,
		})
	}

	next := clampInt(int(math.Round(requested)), MinIngredientGrams, ing.MaxGrams)
	delta := next - ing.Grams
	if delta < MinAdjustmentGrams && delta > -MinAdjustmentGrams {
		return 0, hit
	}

	ing.setGrams(next)
	meal.recompute()
	return float64(delta) * pg, hit
}

// matchingIngredients returns indexes of meal ingredients that can supply k.
func matchingIngredients(meal *MealPlanEntry, role Role, k Macro) []int {
	var out []int
	for i, ing := range meal.Ingredients {
		if ing.Role == role && perGram(ing.Per100g, k) > 0 {
			out = append(out, i)
		}
	}
	return out
}
