package mealplans

import (
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/nutrition"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// GenerateRequest is the request body for POST /v1/meal/plan/generate.
// Omitted inputs fall back to the client's stored selection and targets.
type GenerateRequest struct {
	ClientID     uuid.UUID     `json:"client_id"`
	FoodIDs      []string      `json:"food_ids,omitempty"`
	Targets      *TargetsInput `json:"targets,omitempty"`
	BodyweightKg float64       `json:"bodyweight_kg,omitempty"`
	Seed         *uint64       `json:"seed,omitempty"`
	StartDate    string        `json:"start_date,omitempty"`
	Force        bool          `json:"force,omitempty"`
}

type TargetsInput struct {
	CaloriesKcal int `json:"calories_kcal"`
	ProteinG     int `json:"protein_g"`
	FatG         int `json:"fat_g"`
	CarbsG       int `json:"carbs_g"`
	FiberG       int `json:"fiber_g"`
}

func (t TargetsInput) validate(clientID uuid.UUID, bodyweightKg float64) error {
	req := nutrition.UpsertTargetsRequest{
		ClientID:     clientID,
		CaloriesKcal: t.CaloriesKcal,
		ProteinG:     t.ProteinG,
		FatG:         t.FatG,
		CarbsG:       t.CarbsG,
		FiberG:       t.FiberG,
		BodyweightKg: bodyweightKg,
	}
	return req.Validate()
}

func (t TargetsInput) macroTargets() mealgen.MacroTargets {
	return mealgen.MacroTargets{
		Calories: float64(t.CaloriesKcal),
		Protein:  float64(t.ProteinG),
		Carbs:    float64(t.CarbsG),
		Fat:      float64(t.FatG),
		Fiber:    float64(t.FiberG),
	}
}

// PlanPayload is the immutable, hashed content of one plan version.
type PlanPayload struct {
	ClientID     uuid.UUID                `json:"client_id"`
	StartDate    string                   `json:"start_date"`
	Seed         uint64                   `json:"seed"`
	FoodIDs      []string                 `json:"food_ids"`
	Targets      mealgen.MacroTargets     `json:"targets"`
	BodyweightKg float64                  `json:"bodyweight_kg,omitempty"`
	Week         mealgen.WeeklyPlanResult `json:"week"`
}

// PlanDTO is a stored plan version with its decoded payload.
type PlanDTO struct {
	ID          uuid.UUID   `json:"id"`
	ClientID    uuid.UUID   `json:"client_id"`
	Version     int         `json:"version"`
	PayloadHash string      `json:"payload_hash"`
	StartDate   string      `json:"start_date"`
	LockedUntil time.Time   `json:"locked_until"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	Plan        PlanPayload `json:"plan"`
}

// GenerateResponse reports whether a new version was stored.
type GenerateResponse struct {
	Plan    PlanDTO `json:"plan"`
	Created bool    `json:"created"`
}

// GetMealPlanResponse is returned by GET /v1/meal/plan. Plan is null when
// the client has no active version.
type GetMealPlanResponse struct {
	Plan *PlanDTO `json:"plan"`
}

// TodayDTO is one day of the active plan for a calendar date.
type TodayDTO struct {
	Date      string                  `json:"date"`
	Version   int                     `json:"version"`
	DayNumber int                     `json:"day_number"`
	DayName   string                  `json:"day_name"`
	Plan      mealgen.DailyPlanResult `json:"plan"`
}

type GroceryDTO struct {
	Version    int                   `json:"version"`
	StartDate  string                `json:"start_date"`
	Items      []mealgen.GroceryItem `json:"items"`
	TotalGrams int                   `json:"total_grams"`
}

// VersionDTO is plan metadata without the payload.
type VersionDTO struct {
	ID          uuid.UUID `json:"id"`
	Version     int       `json:"version"`
	Seed        uint64    `json:"seed"`
	PayloadHash string    `json:"payload_hash"`
	StartDate   string    `json:"start_date"`
	LockedUntil time.Time `json:"locked_until"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type VersionsResponse struct {
	Versions []VersionDTO `json:"versions"`
}

// ExportLinkResponse is returned instead of file bytes when the export
// was uploaded to object storage.
type ExportLinkResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
	Filename  string `json:"filename"`
}
