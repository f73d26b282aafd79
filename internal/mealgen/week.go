package mealgen

import "math"

// DaysPerWeek is the number of days GenerateWeek produces.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ShuffleForDay returns a deterministic reordering of items for a day
// index. GenerateDay applies it to the resolved pool, after unknown and
// duplicate ids are dropped. The input slice is not modified.
func ShuffleForDay[T any](items []T, dayIndex int) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(math.Mod(float64((dayIndex+1)*(i+1))*0.618, float64(i+1))))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// GenerateWeek builds seven days. The only errors are pre-flight ones;
// meals that cannot be filled become placeholders.
func (g *Generator) GenerateWeek(req Request) (WeeklyPlanResult, error) {
	if err := g.ValidateSelection(req); err != nil {
		return WeeklyPlanResult{}, err
	}

	res := WeeklyPlanResult{
		Days:               make([]DayPlan, 0, DaysPerWeek),
		WeeklyTargetMacros: req.Targets.Times(DaysPerWeek),
		Seed:               req.Seed,
	}
	var total Macros
	for d := 0; d < DaysPerWeek; d++ {
		day, err := g.GenerateDay(req, d)
		if err != nil {
			return WeeklyPlanResult{}, err
		}
		res.Days = append(res.Days, DayPlan{DayNumber: d + 1, DayName: dayNames[d], Plan: day})
		total = total.Add(day.TotalMacros)
	}
	res.WeeklyTotalMacros = total.Rounded()
	res.WeeklyVariance = res.WeeklyTotalMacros.Minus(res.WeeklyTargetMacros).Rounded()
	return res, nil
}
