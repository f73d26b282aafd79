package mealgen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
)

func enhancedPool(t *testing.T, ids ...string) []EnhancedIngredient {
	t.Helper()
	out := make([]EnhancedIngredient, 0, len(ids))
	for _, id := range ids {
		out = append(out, Enhance(mustLookup(t, id), 0))
	}
	return out
}

func countCategories(items []EnhancedIngredient) map[catalog.Category]int {
	out := make(map[catalog.Category]int)
	for _, it := range items {
		out[it.Category]++
	}
	return out
}

func itemIDs(items []EnhancedIngredient) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestComposeMealSlotRules(t *testing.T) {
	pool := enhancedPool(t, catalog.Default().IDs()...)

	tests := []struct {
		slot catalog.MealSlot
		want map[catalog.Category]int
	}{
		{catalog.SlotBreakfast, map[catalog.Category]int{
			catalog.CategoryProtein: 1, catalog.CategoryCarb: 1, catalog.CategoryFruit: 1, catalog.CategoryFat: 1,
		}},
		{catalog.SlotLunch, map[catalog.Category]int{
			catalog.CategoryProtein: 1, catalog.CategoryCarb: 1, catalog.CategoryVegetable: 2, catalog.CategoryFat: 1, catalog.CategoryMisc: 1,
		}},
		{catalog.SlotDinner, map[catalog.Category]int{
			catalog.CategoryProtein: 1, catalog.CategoryCarb: 1, catalog.CategoryVegetable: 2, catalog.CategoryFat: 1, catalog.CategoryMisc: 1,
		}},
		{catalog.SlotSnack, map[catalog.Category]int{
			catalog.CategoryProtein: 1, catalog.CategoryFruit: 1, catalog.CategoryFat: 1,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			for seed := uint64(0); seed < 25; seed++ {
				items, err := ComposeMeal(pool, tt.slot, dayRand(seed, 0))
				if err != nil {
					t.Fatalf("seed=%d: ComposeMeal() error = %v", seed, err)
				}
				if got := countCategories(items); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("seed=%d: categories = %v, want %v (%v)", seed, got, tt.want, itemIDs(items))
				}
				if items[0].Category != catalog.CategoryProtein {
					t.Errorf("seed=%d: first pick %s is not the protein", seed, items[0].ID)
				}
				seen := make(map[string]bool)
				for _, it := range items {
					if !it.AllowedIn(tt.slot) {
						t.Errorf("seed=%d: %s not allowed in %s", seed, it.ID, tt.slot)
					}
					if seen[it.ID] {
						t.Errorf("seed=%d: %s picked twice", seed, it.ID)
					}
					seen[it.ID] = true
				}
			}
		})
	}
}

func TestComposeMealDairyFallback(t *testing.T) {
	tests := []struct {
		name    string
		pool    []string
		slot    catalog.MealSlot
		wantID  string
		wantErr error
	}{
		{"dairy stands in for protein", []string{"greek-yogurt", "banana", "oats"}, catalog.SlotBreakfast, "greek-yogurt", nil},
		{"protein preferred over dairy", []string{"greek-yogurt", "whey-protein", "banana"}, catalog.SlotSnack, "whey-protein", nil},
		{"no protein source", []string{"banana", "oats", "almonds"}, catalog.SlotBreakfast, "", ErrUnbalancedSelection},
		{"nothing fits the slot", []string{"chicken-breast", "brown-rice"}, catalog.SlotSnack, "", ErrInsufficientIngredients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ComposeMeal(enhancedPool(t, tt.pool...), tt.slot, dayRand(1, 0))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComposeMeal() error = %v", err)
			}
			if items[0].ID != tt.wantID {
				t.Errorf("protein pick = %s, want %s", items[0].ID, tt.wantID)
			}
			proteins := 0
			for _, it := range items {
				if it.Category == catalog.CategoryProtein || it.Category == catalog.CategoryDairy {
					proteins++
				}
			}
			if proteins != 1 {
				t.Errorf("protein sources = %d, want 1 (%v)", proteins, itemIDs(items))
			}
		})
	}
}

func TestComposeMealVegetablesCappedAtTwo(t *testing.T) {
	pool := enhancedPool(t, "cod", "broccoli", "spinach", "bell-pepper", "zucchini", "carrots")
	for seed := uint64(0); seed < 20; seed++ {
		items, err := ComposeMeal(pool, catalog.SlotDinner, dayRand(seed, 0))
		if err != nil {
			t.Fatalf("ComposeMeal() error = %v", err)
		}
		if n := countCategories(items)[catalog.CategoryVegetable]; n != maxVegetablesPerMeal {
			t.Errorf("seed=%d: %d vegetables, want %d", seed, n, maxVegetablesPerMeal)
		}
	}

	one := enhancedPool(t, "cod", "broccoli")
	items, err := ComposeMeal(one, catalog.SlotLunch, dayRand(0, 0))
	if err != nil {
		t.Fatalf("ComposeMeal() error = %v", err)
	}
	if got := itemIDs(items); !reflect.DeepEqual(got, []string{"cod", "broccoli"}) {
		t.Errorf("items = %v", got)
	}
}

func TestComposeMealSeeded(t *testing.T) {
	pool := enhancedPool(t, catalog.Default().IDs()...)

	a, err := ComposeMeal(pool, catalog.SlotLunch, dayRand(7, 2))
	if err != nil {
		t.Fatalf("ComposeMeal() error = %v", err)
	}
	b, _ := ComposeMeal(pool, catalog.SlotLunch, dayRand(7, 2))
	if !reflect.DeepEqual(itemIDs(a), itemIDs(b)) {
		t.Errorf("same seed gave %v and %v", itemIDs(a), itemIDs(b))
	}

	distinct := make(map[string]bool)
	for seed := uint64(0); seed < 30; seed++ {
		items, _ := ComposeMeal(pool, catalog.SlotLunch, dayRand(seed, 2))
		distinct[items[0].ID] = true
	}
	if len(distinct) < 2 {
		t.Errorf("30 seeds produced a single protein choice %v", distinct)
	}
}
