package mealgen

import (
	"math"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

// Macro names one of the tracked nutrients.
type Macro string

const (
	MacroCalories Macro = "calories"
	MacroProtein  Macro = "protein"
	MacroCarbs    Macro = "carbs"
	MacroFat      Macro = "fat"
)

// trackedMacros is the order variances are reported in.
var trackedMacros = []Macro{MacroCalories, MacroProtein, MacroCarbs, MacroFat}

// Macros is an aggregate nutrient amount (kcal and grams).
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// MacroTargets is the caller-supplied daily goal. Fiber is optional.
type MacroTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
}

func (t MacroTargets) asMacros() Macros {
	return Macros{Calories: t.Calories, Protein: t.Protein, Carbs: t.Carbs, Fat: t.Fat, Fiber: t.Fiber}
}

// Times multiplies every target by n.
func (t MacroTargets) Times(n float64) MacroTargets {
	return MacroTargets{
		Calories: t.Calories * n,
		Protein:  t.Protein * n,
		Carbs:    t.Carbs * n,
		Fat:      t.Fat * n,
		Fiber:    t.Fiber * n,
	}
}

func (t MacroTargets) get(m Macro) float64 {
	return t.asMacros().Get(m)
}

// Get returns a single nutrient value.
func (m Macros) Get(k Macro) float64 {
	switch k {
	case MacroCalories:
		return m.Calories
	case MacroProtein:
		return m.Protein
	case MacroCarbs:
		return m.Carbs
	case MacroFat:
		return m.Fat
	}
	return 0
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
		Fiber:    m.Fiber + o.Fiber,
	}
}

// Minus returns m − t, the signed deviation from a target.
func (m Macros) Minus(t MacroTargets) Macros {
	return Macros{
		Calories: m.Calories - t.Calories,
		Protein:  m.Protein - t.Protein,
		Carbs:    m.Carbs - t.Carbs,
		Fat:      m.Fat - t.Fat,
		Fiber:    m.Fiber - t.Fiber,
	}
}

// Rounded rounds every field to one decimal place.
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: round1(m.Calories),
		Protein:  round1(m.Protein),
		Carbs:    round1(m.Carbs),
		Fat:      round1(m.Fat),
		Fiber:    round1(m.Fiber),
	}
}

// macrosForGrams scales a per-100g profile to a concrete amount.
func macrosForGrams(per100 catalog.Macros, grams float64) Macros {
	f := grams / 100
	return Macros{
		Calories: per100.Calories * f,
		Protein:  per100.Protein * f,
		Carbs:    per100.Carbs * f,
		Fat:      per100.Fat * f,
		Fiber:    per100.Fiber * f,
	}
}

func perGram(per100 catalog.Macros, k Macro) float64 {
	switch k {
	case MacroCalories:
		return per100.Calories / 100
	case MacroProtein:
		return per100.Protein / 100
	case MacroCarbs:
		return per100.Carbs / 100
	case MacroFat:
		return per100.Fat / 100
	}
	return 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
