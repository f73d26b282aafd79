package foodselection

import (
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/google/uuid"
)

// SelectionDTO is the set of catalog foods a client may be planned with.
type SelectionDTO struct {
	ClientID  uuid.UUID  `json:"client_id"`
	FoodIDs   []string   `json:"food_ids"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PutSelectionRequest is the request body for PUT /v1/food/selection.
type PutSelectionRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	FoodIDs  []string  `json:"food_ids"`
}

// CatalogItemDTO is one reference food with its derived role and default portion cap.
type CatalogItemDTO struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Category        catalog.Category   `json:"category"`
	Role            mealgen.Role       `json:"role"`
	Per100g         catalog.Macros     `json:"per_100g"`
	Slots           []catalog.MealSlot `json:"meal_slots"`
	ServingGrams    float64            `json:"serving_grams"`
	MaxGramsPerMeal float64            `json:"max_grams_per_meal"`
	Tags            []string           `json:"tags,omitempty"`
}

// CatalogResponse is the response for GET /v1/food/catalog.
type CatalogResponse struct {
	Items  []CatalogItemDTO `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// CatalogFilter narrows GET /v1/food/catalog. Empty fields match everything.
type CatalogFilter struct {
	Query    string
	Category catalog.Category
	Slot     catalog.MealSlot
}
