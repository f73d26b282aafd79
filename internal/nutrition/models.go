package nutrition

import (
	"fmt"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/google/uuid"
)

// TargetsDTO represents the daily nutrition targets of a client.
type TargetsDTO struct {
	ClientID     uuid.UUID `json:"client_id"`
	CaloriesKcal int       `json:"calories_kcal"`
	ProteinG     int       `json:"protein_g"`
	FatG         int       `json:"fat_g"`
	CarbsG       int       `json:"carbs_g"`
	FiberG       int       `json:"fiber_g"`
	BodyweightKg float64   `json:"bodyweight_kg,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MacroTargets converts the stored integers into the generator's targets.
func (t TargetsDTO) MacroTargets() mealgen.MacroTargets {
	return mealgen.MacroTargets{
		Calories: float64(t.CaloriesKcal),
		Protein:  float64(t.ProteinG),
		Carbs:    float64(t.CarbsG),
		Fat:      float64(t.FatG),
		Fiber:    float64(t.FiberG),
	}
}

// GetTargetsResponse contains targets and a flag indicating if they are defaults.
type GetTargetsResponse struct {
	Targets   TargetsDTO `json:"targets"`
	IsDefault bool       `json:"is_default"`
}

// UpsertTargetsRequest is the request body for PUT /v1/nutrition/targets.
type UpsertTargetsRequest struct {
	ClientID     uuid.UUID `json:"client_id"`
	CaloriesKcal int       `json:"calories_kcal"`
	ProteinG     int       `json:"protein_g"`
	FatG         int       `json:"fat_g"`
	CarbsG       int       `json:"carbs_g"`
	FiberG       int       `json:"fiber_g"`
	BodyweightKg float64   `json:"bodyweight_kg"`
}

// Validate validates the upsert request.
func (r *UpsertTargetsRequest) Validate() error {
	if r.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}

	if r.CaloriesKcal < 800 || r.CaloriesKcal > 6000 {
		return fmt.Errorf("calories_kcal must be between 800 and 6000")
	}

	if r.ProteinG < 0 || r.ProteinG > 400 {
		return fmt.Errorf("protein_g must be between 0 and 400")
	}

	if r.FatG < 0 || r.FatG > 250 {
		return fmt.Errorf("fat_g must be between 0 and 250")
	}

	if r.CarbsG < 0 || r.CarbsG > 800 {
		return fmt.Errorf("carbs_g must be between 0 and 800")
	}

	if r.FiberG < 0 || r.FiberG > 100 {
		return fmt.Errorf("fiber_g must be between 0 and 100")
	}

	// 0 means unknown; portion caps then use the fixed fallbacks
	if r.BodyweightKg != 0 && (r.BodyweightKg < 30 || r.BodyweightKg > 300) {
		return fmt.Errorf("bodyweight_kg must be 0 or between 30 and 300")
	}

	return nil
}

// GetDefaultTargets returns reasonable default nutrition targets.
func GetDefaultTargets(clientID uuid.UUID) TargetsDTO {
	now := time.Now().UTC()
	return TargetsDTO{
		ClientID:     clientID,
		CaloriesKcal: 2200,
		ProteinG:     120,
		FatG:         70,
		CarbsG:       250,
		FiberG:       30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
