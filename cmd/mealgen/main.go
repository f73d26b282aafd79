package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
)

func main() {
	cfg := config.Load()

	foods := flag.String("foods", "", "comma-separated catalog ids")
	targets := flag.String("targets", "2200,120,250,70", "daily targets kcal,protein,carbs,fat[,fiber]")
	bodyweight := flag.Float64("bodyweight", 0, "bodyweight in kg (0 = unknown)")
	seed := flag.Uint64("seed", cfg.Plan.DefaultSeed, "generation seed")
	day := flag.Int("day", -1, "generate a single day (0 = Monday); -1 for the whole week")
	grocery := flag.Bool("grocery", false, "print the weekly grocery list instead of the plan")
	flag.Parse()

	foodIDs := splitList(*foods)
	if len(foodIDs) == 0 {
		log.Fatalf("usage: go run ./cmd/mealgen -foods chicken-breast,brown-rice,... [-targets kcal,p,c,f] [-seed n] [-grocery]")
	}

	macroTargets, err := parseTargets(*targets)
	if err != nil {
		log.Fatalf("invalid -targets: %v", err)
	}

	cat := catalog.Default()
	for _, id := range foodIDs {
		if _, ok := cat.Lookup(id); !ok {
			log.Printf("WARN mealgen: unknown food id %q is ignored", id)
		}
	}

	gen := mealgen.NewGenerator(cat)
	req := mealgen.Request{
		FoodIDs:      foodIDs,
		Targets:      macroTargets,
		BodyweightKg: *bodyweight,
		Seed:         *seed,
	}

	var out any
	switch {
	case *day >= 0:
		if *day >= mealgen.DaysPerWeek {
			log.Fatalf("-day must be between 0 and %d", mealgen.DaysPerWeek-1)
		}
		if err := gen.ValidateSelection(req); err != nil {
			log.Fatalf("generate: %v", err)
		}
		out, err = gen.GenerateDay(req, *day)
	default:
		var week mealgen.WeeklyPlanResult
		week, err = gen.GenerateWeek(req)
		out = week
		if err == nil && *grocery {
			out = mealgen.AggregateGroceries(week)
		}
	}
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseTargets reads "kcal,protein,carbs,fat" with an optional fifth fiber value.
func parseTargets(raw string) (mealgen.MacroTargets, error) {
	parts := splitList(raw)
	if len(parts) != 4 && len(parts) != 5 {
		return mealgen.MacroTargets{}, fmt.Errorf("expected 4 or 5 values, got %d", len(parts))
	}

	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return mealgen.MacroTargets{}, fmt.Errorf("bad value %q", p)
		}
		vals[i] = v
	}

	t := mealgen.MacroTargets{
		Calories: vals[0],
		Protein:  vals[1],
		Carbs:    vals[2],
		Fat:      vals[3],
	}
	if len(vals) == 5 {
		t.Fiber = vals[4]
	}
	return t, nil
}
