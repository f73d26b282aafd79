package catalog

import (
	"fmt"
	"sort"
)

// MealSlot is one of the four fixed meal occasions of a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// AllSlots returns the meal slots in day order.
func AllSlots() []MealSlot {
	return []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}
}

// ParseMealSlot validates a slot name.
func ParseMealSlot(s string) (MealSlot, error) {
	switch MealSlot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		return MealSlot(s), nil
	}
	return "", fmt.Errorf("invalid meal_slot %q", s)
}

// Category groups ingredients for meal composition.
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryDairy     Category = "dairy"
	CategoryCarb      Category = "carb"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryFat       Category = "fat"
	CategoryMisc      Category = "misc"
)

// Macros holds nutrients per 100 g of an ingredient.
type Macros struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// Ingredient is an immutable catalog entry.
type Ingredient struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	Per100g      Macros     `json:"per_100g"`
	Slots        []MealSlot `json:"meal_slots"`
	ServingGrams float64    `json:"serving_grams"`
	Tags         []string   `json:"tags,omitempty"`
}

// AllowedIn reports whether the ingredient may be served in the slot.
func (i Ingredient) AllowedIn(slot MealSlot) bool {
	for _, s := range i.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Source resolves ingredient ids.
type Source interface {
	Lookup(id string) (Ingredient, bool)
}

// Catalog is an id-indexed, read-only set of ingredients.
type Catalog struct {
	byID map[string]Ingredient
	ids  []string
}

// New builds a catalog. Duplicate or empty ids are rejected.
func New(items []Ingredient) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Ingredient, len(items))}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("ingredient %q has empty id", it.Name)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate ingredient id %q", it.ID)
		}
		if it.ServingGrams <= 0 {
			return nil, fmt.Errorf("ingredient %q: serving_grams must be positive", it.ID)
		}
		c.byID[it.ID] = it
		c.ids = append(c.ids, it.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// MustNew is New that panics; used for the built-in data set.
func MustNew(items []Ingredient) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(id string) (Ingredient, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// IDs returns all ingredient ids, sorted.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// All returns every ingredient ordered by id.
func (c *Catalog) All() []Ingredient {
	out := make([]Ingredient, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of ingredients.
func (c *Catalog) Len() int {
	return len(c.ids)
}
