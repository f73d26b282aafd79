package mealgen

import (
	"fmt"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

var prepSteps = map[catalog.Category]string{
	catalog.CategoryProtein:   "Cook %s until done and season to taste.",
	catalog.CategoryDairy:     "Serve %s chilled.",
	catalog.CategoryCarb:      "Prepare %s according to package directions.",
	catalog.CategoryVegetable: "Steam or sauté %s until tender.",
	catalog.CategoryFruit:     "Wash and slice %s.",
	catalog.CategoryFat:       "Finish with %s.",
	catalog.CategoryMisc:      "Season with %s.",
}

// describeMeal sets the entry's title and recipe text from its final grams.
func describeMeal(e *MealPlanEntry) {
	if e.Placeholder || len(e.Ingredients) == 0 {
		return
	}

	names := make([]string, 0, len(e.Ingredients))
	for _, ing := range e.Ingredients {
		names = append(names, ing.Name)
	}
	switch len(names) {
	case 1:
		e.Title = names[0]
	default:
		e.Title = names[0] + " with " + names[1]
	}

	var b strings.Builder
	b.WriteString("Ingredients:\n")
	for _, ing := range e.Ingredients {
		fmt.Fprintf(&b, "- %d g %s\n", ing.Grams, ing.Name)
	}
	b.WriteString("Steps:\n")
	n := 1
	for _, ing := range e.Ingredients {
		step, ok := prepSteps[ing.Category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%d. "+step+"\n", n, strings.ToLower(ing.Name))
		n++
	}
	e.Recipe = strings.TrimRight(b.String(), "\n")
}
