package mealgen

import (
	"errors"
	"reflect"
	"testing"
)

func TestShuffleForDay(t *testing.T) {
	in := []string{"a", "b", "c", "d"}

	tests := []struct {
		day  int
		want []string
	}{
		{0, []string{"a", "d", "b", "c"}},
		{1, []string{"b", "c", "d", "a"}},
	}
	for _, tt := range tests {
		got := ShuffleForDay(in, tt.day)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ShuffleForDay(day=%d) = %v, want %v", tt.day, got, tt.want)
		}
	}

	if !reflect.DeepEqual(in, []string{"a", "b", "c", "d"}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestShuffleForDayIsDeterministicPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	for day := 0; day < DaysPerWeek; day++ {
		a := ShuffleForDay(in, day)
		b := ShuffleForDay(in, day)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("day %d: shuffle not deterministic", day)
		}
		seen := make(map[int]bool)
		for _, v := range a {
			seen[v] = true
		}
		if len(seen) != len(in) || len(a) != len(in) {
			t.Fatalf("day %d: %v is not a permutation", day, a)
		}
	}
	if got := ShuffleForDay([]int{}, 3); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}

func TestGenerateWeekTotals(t *testing.T) {
	g := newTestGenerator()
	targets := MacroTargets{Calories: 2200, Protein: 165, Carbs: 220, Fat: 73}
	week, err := g.GenerateWeek(Request{FoodIDs: balancedFoods, Targets: targets, Seed: 3})
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(week.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(week.Days))
	}
	if week.Days[0].DayName != "Monday" || week.Days[6].DayName != "Sunday" || week.Days[6].DayNumber != 7 {
		t.Errorf("day labels = %s/%s/%d", week.Days[0].DayName, week.Days[6].DayName, week.Days[6].DayNumber)
	}
	if week.WeeklyTargetMacros.Calories != 2200*7 || week.WeeklyTargetMacros.Protein != 165*7 {
		t.Errorf("weekly target = %+v", week.WeeklyTargetMacros)
	}
	if week.Seed != 3 {
		t.Errorf("seed = %d, want 3", week.Seed)
	}

	var sum float64
	for _, d := range week.Days {
		sum += d.Plan.TotalMacros.Calories
	}
	if diff := sum - week.WeeklyTotalMacros.Calories; diff > 0.1 || diff < -0.1 {
		t.Errorf("weekly calories %.1f != sum of days %.1f", week.WeeklyTotalMacros.Calories, sum)
	}
	wantVar := week.WeeklyTotalMacros.Calories - week.WeeklyTargetMacros.Calories
	if diff := week.WeeklyVariance.Calories - wantVar; diff > 0.1 || diff < -0.1 {
		t.Errorf("weekly variance %.1f, want %.1f", week.WeeklyVariance.Calories, wantVar)
	}
}

func TestGenerateWeekPreflight(t *testing.T) {
	g := newTestGenerator()
	targets := MacroTargets{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no foods", Request{Targets: targets}, ErrNoPopulatableSlots},
		{"only unknown ids", Request{FoodIDs: []string{"nope"}, Targets: targets}, ErrNoPopulatableSlots},
		{"no protein anywhere", Request{FoodIDs: []string{"brown-rice", "banana", "olive-oil"}, Targets: targets}, ErrNoPopulatableSlots},
		{"zero calories", Request{FoodIDs: balancedFoods}, ErrInvalidTargets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateWeek(tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	// one populatable slot is enough
	if _, err := g.GenerateWeek(Request{FoodIDs: []string{"chicken-breast"}, Targets: targets}); err != nil {
		t.Errorf("single protein: error = %v", err)
	}
}
