package mealgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

// MaxConvergenceIterations bounds the adjustment passes per day.
const MaxConvergenceIterations = 5

// Request is the input of one generation call.
type Request struct {
	FoodIDs      []string
	Targets      MacroTargets
	BodyweightKg float64
	Seed         uint64
}

// Generator builds meal plans from a read-only catalog. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	source catalog.Source
}

func NewGenerator(source catalog.Source) *Generator {
	return &Generator{source: source}
}

// pool resolves ids in order, dropping duplicates and unknown ids.
func (g *Generator) pool(req Request) []EnhancedIngredient {
	seen := make(map[string]bool, len(req.FoodIDs))
	out := make([]EnhancedIngredient, 0, len(req.FoodIDs))
	for _, id := range req.FoodIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ing, ok := g.source.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, Enhance(ing, req.BodyweightKg))
	}
	return out
}

// ValidateSelection fails when no meal slot could be filled from the request's foods.
func (g *Generator) ValidateSelection(req Request) error {
	if req.Targets.Calories <= 0 {
		return ErrInvalidTargets
	}
	pool := g.pool(req)
	for _, slot := range catalog.AllSlots() {
		if len(proteinCandidates(filterSlot(pool, slot))) > 0 {
			return nil
		}
	}
	return ErrNoPopulatableSlots
}

func dayRand(seed uint64, dayIndex int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(dayIndex)+1))
}

// GenerateDay builds the plan for one day of the week (0 = Monday).
func (g *Generator) GenerateDay(req Request, dayIndex int) (DailyPlanResult, error) {
	if req.Targets.Calories <= 0 {
		return DailyPlanResult{}, ErrInvalidTargets
	}
	c := converge(g.composeDay(req, dayIndex), req.Targets)
	return finalize(c, req.Targets), nil
}

// composeDay fills every slot and scales it to its calorie share.
func (g *Generator) composeDay(req Request, dayIndex int) *dayPlan {
	pool := ShuffleForDay(g.pool(req), dayIndex)
	rng := dayRand(req.Seed, dayIndex)

	plan := &dayPlan{}
	for _, slot := range catalog.AllSlots() {
		items, err := ComposeMeal(pool, slot, rng)
		if err != nil {
			plan.meals = append(plan.meals, placeholderEntry(slot, placeholderMessage(slot, err)))
			continue
		}
		plan.meals = append(plan.meals, ScaleMeal(slot, items, req.Targets.Calories*SlotShare(slot)))
	}
	return plan
}

// bestResult keeps the lowest-score state seen while converging.
type bestResult struct {
	plan   *dayPlan
	report ToleranceReport
}

func (b *bestResult) observe(p *dayPlan, r ToleranceReport) {
	if b.plan == nil || r.Score() < b.report.Score() {
		b.plan, b.report = p.Clone(), r
	}
}

// choose returns the state to publish. A final state within tolerance is
// kept as is; otherwise the lowest-score snapshot wins.
func (b *bestResult) choose(final *dayPlan, r ToleranceReport) (*dayPlan, ToleranceReport) {
	if r.WithinTolerance || b.plan == nil || r.Score() <= b.report.Score() {
		return final, r
	}
	return b.plan, b.report
}

type convergence struct {
	plan        *dayPlan
	report      ToleranceReport
	iterations  int
	constraints *ConvergenceConstraints
}

// converge runs adjustment passes until the plan is within tolerance, a
// pass changes nothing, or MaxConvergenceIterations is reached.
func converge(plan *dayPlan, targets MacroTargets) convergence {
	constraints := &ConvergenceConstraints{}
	adj := &adjuster{targets: targets, constraints: constraints}

	var best bestResult
	iterations := 0
	report := CheckTolerance(plan.totals(), targets)
	for {
		best.observe(plan, report)
		if report.WithinTolerance || iterations >= MaxConvergenceIterations {
			break
		}
		iterations++
		if !adj.pass(plan, report) {
			break
		}
		report = CheckTolerance(plan.totals(), targets)
	}
	plan, report = best.choose(plan, report)
	return convergence{plan: plan, report: report, iterations: iterations, constraints: constraints}
}

// finalize rounds the published macros to 0.1. Converged and Score come from
// the unrounded report the loop stopped on.
func finalize(c convergence, targets MacroTargets) DailyPlanResult {
	res := DailyPlanResult{
		Meals:        make(map[catalog.MealSlot]MealPlanEntry, len(c.plan.meals)),
		TargetMacros: targets,
	}
	var total Macros
	for _, meal := range c.plan.meals {
		for i := range meal.Ingredients {
			meal.Ingredients[i].setGrams(meal.Ingredients[i].Grams)
		}
		meal.recompute()
		meal.Macros = meal.Macros.Rounded()
		describeMeal(&meal)
		for i := range meal.Ingredients {
			meal.Ingredients[i].Macros = meal.Ingredients[i].Macros.Rounded()
		}
		res.Meals[meal.Slot] = meal
		total = total.Add(meal.Macros)
	}
	res.TotalMacros = total.Rounded()
	res.Variance = res.TotalMacros.Minus(targets).Rounded()

	info := ConvergenceInfo{
		Converged:         c.report.WithinTolerance,
		Iterations:        c.iterations,
		ConstraintHit:     c.constraints.Hit,
		ConstraintDetails: append([]ConstraintViolation{}, c.constraints.Details...),
		Score:             math.Round(c.report.Score()*1000) / 1000,
	}
	if !info.Converged {
		info.Reason = convergenceReason(c.report, c.iterations, c.constraints)
	}
	res.ConvergenceInfo = info
	return res
}

func convergenceReason(report ToleranceReport, iterations int, constraints *ConvergenceConstraints) string {
	if constraints.Hit {
		parts := make([]string, 0, len(constraints.Details))
		for _, d := range constraints.Details {
			parts = append(parts, fmt.Sprintf("%s capped at %dg in %s (wanted %dg)", d.Name, d.MaxGrams, d.Slot, d.RequestedGrams))
		}
		return "physiological constraint hit: " + strings.Join(parts, "; ")
	}
	var off []string
	for _, k := range trackedMacros {
		if report.OutOfTolerance[k] {
			off = append(off, fmt.Sprintf("%s %+.1f%%", k, report.Variance[k]*100))
		}
	}
	return fmt.Sprintf("partial convergence after %d iterations: %s", iterations, strings.Join(off, ", "))
}

func placeholderMessage(slot catalog.MealSlot, err error) string {
	switch {
	case errors.Is(err, ErrUnbalancedSelection):
		return fmt.Sprintf("No protein source selected for %s", slot)
	default:
		return fmt.Sprintf("No suitable ingredients selected for %s", slot)
	}
}
