package main

import (
	"reflect"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
)

func TestParseTargets(t *testing.T) {
	tests := []struct {
		raw     string
		want    mealgen.MacroTargets
		wantErr bool
	}{
		{"2200,120,250,70", mealgen.MacroTargets{Calories: 2200, Protein: 120, Carbs: 250, Fat: 70}, false},
		{" 1800, 150 ,180,60,25", mealgen.MacroTargets{Calories: 1800, Protein: 150, Carbs: 180, Fat: 60, Fiber: 25}, false},
		{"2200,120,250", mealgen.MacroTargets{}, true},
		{"2200,abc,250,70", mealgen.MacroTargets{}, true},
		{"2200,-5,250,70", mealgen.MacroTargets{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTargets(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTargets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseTargets() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" oats, ,banana,")
	want := []string{"oats", "banana"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
	if splitList("") != nil {
		t.Error("expected nil for empty input")
	}
}
