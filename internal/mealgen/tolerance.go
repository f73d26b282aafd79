package mealgen

import "math"

// Tolerances is the allowed relative deviation per macro.
var Tolerances = map[Macro]float64{
	MacroCalories: 0.05,
	MacroProtein:  0.05,
	MacroCarbs:    0.08,
	MacroFat:      0.08,
}

// ToleranceReport compares aggregate macros with a target.
type ToleranceReport struct {
	// Variance is (actual - target) / target per macro, 0 when the target is unset.
	Variance        map[Macro]float64
	OutOfTolerance  map[Macro]bool
	WithinTolerance bool
}

// CheckTolerance evaluates actual against targets.
func CheckTolerance(actual Macros, targets MacroTargets) ToleranceReport {
	r := ToleranceReport{
		Variance:        make(map[Macro]float64, len(trackedMacros)),
		OutOfTolerance:  make(map[Macro]bool, len(trackedMacros)),
		WithinTolerance: true,
	}
	for _, k := range trackedMacros {
		target := targets.get(k)
		v := 0.0
		if target > 0 {
			v = (actual.Get(k) - target) / target
		}
		r.Variance[k] = v
		if math.Abs(v) > Tolerances[k] {
			r.OutOfTolerance[k] = true
			r.WithinTolerance = false
		}
	}
	return r
}

// Score is the sum of absolute variances; lower is closer to target.
func (r ToleranceReport) Score() float64 {
	var s float64
	for _, k := range trackedMacros {
		s += math.Abs(r.Variance[k])
	}
	return s
}
