package mealgen

import (
	"math"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

func mustLookup(t *testing.T, id string) catalog.Ingredient {
	t.Helper()
	ing, ok := catalog.Default().Lookup(id)
	if !ok {
		t.Fatalf("ingredient %q missing from default catalog", id)
	}
	return ing
}

func TestPortionLimits(t *testing.T) {
	chicken := mustLookup(t, "chicken-breast")
	oil := mustLookup(t, "olive-oil")
	rice := mustLookup(t, "brown-rice")

	tests := []struct {
		name       string
		ing        catalog.Ingredient
		role       Role
		bodyweight float64
		wantMax    float64
	}{
		{"unknown bodyweight uses fallback", chicken, RoleProtein, 0, 225},
		{"negative bodyweight uses fallback", chicken, RoleProtein, -70, 225},
		{"bodyweight cap below fallback", chicken, RoleProtein, 80, 0.6 * 80 / 31 * 100},
		{"fallback below bodyweight cap", chicken, RoleProtein, 200, 225},
		{"fat cap", oil, RoleFat, 80, 32},
		{"carb fallback wins", rice, RoleCarb, 80, 400},
		{"secondary ignores bodyweight", rice, RoleSecondary, 80, 300},
		{"no macro content", catalog.Ingredient{ID: "water"}, RoleProtein, 80, 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PortionLimits(tt.ing, tt.role, tt.bodyweight)
			if math.Abs(got.MaxGramsPerMeal-tt.wantMax) > 1e-9 {
				t.Errorf("MaxGramsPerMeal = %v, want %v", got.MaxGramsPerMeal, tt.wantMax)
			}
		})
	}
}

func TestPortionLimitsPreferredRange(t *testing.T) {
	got := PortionLimits(mustLookup(t, "olive-oil"), RoleFat, 0)
	if got.PreferredRange != (GramRange{Min: 5, Max: 30}) {
		t.Errorf("PreferredRange = %+v, want [5,30]", got.PreferredRange)
	}
}

func TestEnhance(t *testing.T) {
	e := Enhance(mustLookup(t, "chicken-breast"), 80)
	if e.Role != RoleProtein {
		t.Fatalf("Role = %s, want protein", e.Role)
	}
	if got := e.maxGrams(); got != 154 {
		t.Errorf("maxGrams() = %d, want 154", got)
	}

	tiny := EnhancedIngredient{MaxGramsPerMeal: 4.2}
	if got := tiny.maxGrams(); got != MinIngredientGrams {
		t.Errorf("maxGrams() = %d, want %d", got, MinIngredientGrams)
	}
}
