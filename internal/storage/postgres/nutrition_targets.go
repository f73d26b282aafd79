package postgres

import (
	"context"
	"fmt"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type nutritionTargetsStorage struct {
	pool *pgxpool.Pool
}

func newNutritionTargetsStorage(pool *pgxpool.Pool) *nutritionTargetsStorage {
	return &nutritionTargetsStorage{pool: pool}
}

const nutritionTargetColumns = `id, owner_user_id, client_id, calories_kcal, protein_g, fat_g, carbs_g, fiber_g, bodyweight_kg, created_at, updated_at`

func scanNutritionTarget(row pgx.Row) (*storage.NutritionTarget, error) {
	var t storage.NutritionTarget
	err := row.Scan(
		&t.ID,
		&t.OwnerUserID,
		&t.ClientID,
		&t.CaloriesKcal,
		&t.ProteinG,
		&t.FatG,
		&t.CarbsG,
		&t.FiberG,
		&t.BodyweightKg,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *nutritionTargetsStorage) Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*storage.NutritionTarget, error) {
	query := `SELECT ` + nutritionTargetColumns + `
		FROM nutrition_targets
		WHERE owner_user_id = $1 AND client_id = $2
	`

	target, err := scanNutritionTarget(s.pool.QueryRow(ctx, query, ownerUserID, clientID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nutrition targets: %w", err)
	}

	return target, nil
}

func (s *nutritionTargetsStorage) Upsert(ctx context.Context, ownerUserID string, clientID uuid.UUID, upsert storage.NutritionTargetUpsert) (*storage.NutritionTarget, error) {
	query := `
		INSERT INTO nutrition_targets (owner_user_id, client_id, calories_kcal, protein_g, fat_g, carbs_g, fiber_g, bodyweight_kg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_user_id, client_id)
		DO UPDATE SET
			calories_kcal = EXCLUDED.calories_kcal,
			protein_g = EXCLUDED.protein_g,
			fat_g = EXCLUDED.fat_g,
			carbs_g = EXCLUDED.carbs_g,
			fiber_g = EXCLUDED.fiber_g,
			bodyweight_kg = EXCLUDED.bodyweight_kg,
			updated_at = NOW()
		RETURNING ` + nutritionTargetColumns

	target, err := scanNutritionTarget(s.pool.QueryRow(ctx, query,
		ownerUserID,
		clientID,
		upsert.CaloriesKcal,
		upsert.ProteinG,
		upsert.FatG,
		upsert.CarbsG,
		upsert.FiberG,
		upsert.BodyweightKg,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert nutrition targets: %w", err)
	}

	return target, nil
}
