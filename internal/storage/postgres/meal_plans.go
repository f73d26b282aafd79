package postgres

import (
	"context"
	"fmt"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mealPlansStorage struct {
	pool *pgxpool.Pool
}

func newMealPlansStorage(pool *pgxpool.Pool) *mealPlansStorage {
	return &mealPlansStorage{pool: pool}
}

// Seeds are stored bit-for-bit in a BIGINT column.

func (s *mealPlansStorage) GetActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) (storage.MealPlan, bool, error) {
	query := `
		SELECT id, owner_user_id, client_id, version, seed, payload_hash, payload,
		       start_date, locked_until, is_active, created_at
		FROM meal_plans
		WHERE owner_user_id = $1 AND client_id = $2 AND is_active = true
	`

	var plan storage.MealPlan
	var seed int64
	err := s.pool.QueryRow(ctx, query, ownerUserID, clientID).Scan(
		&plan.ID,
		&plan.OwnerUserID,
		&plan.ClientID,
		&plan.Version,
		&seed,
		&plan.PayloadHash,
		&plan.Payload,
		&plan.StartDate,
		&plan.LockedUntil,
		&plan.IsActive,
		&plan.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return storage.MealPlan{}, false, nil
	}
	if err != nil {
		return storage.MealPlan{}, false, fmt.Errorf("failed to get active meal plan: %w", err)
	}
	plan.Seed = uint64(seed)

	return plan, true, nil
}

func (s *mealPlansStorage) CreateVersion(ctx context.Context, ownerUserID string, clientID uuid.UUID, in storage.MealPlanCreate) (storage.MealPlan, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storage.MealPlan{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deactivateQuery := `
		UPDATE meal_plans
		SET is_active = false
		WHERE owner_user_id = $1 AND client_id = $2 AND is_active = true
	`
	if _, err := tx.Exec(ctx, deactivateQuery, ownerUserID, clientID); err != nil {
		return storage.MealPlan{}, fmt.Errorf("failed to deactivate meal plan: %w", err)
	}

	insertQuery := `
		INSERT INTO meal_plans (owner_user_id, client_id, version, seed, payload_hash, payload,
		                        start_date, locked_until, is_active)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3, $4, $5, $6, $7, true
		FROM meal_plans
		WHERE owner_user_id = $1 AND client_id = $2
		RETURNING id, owner_user_id, client_id, version, start_date, locked_until, is_active, created_at
	`

	plan := storage.MealPlan{
		Seed:        in.Seed,
		PayloadHash: in.PayloadHash,
		Payload:     in.Payload,
	}
	err = tx.QueryRow(ctx, insertQuery,
		ownerUserID,
		clientID,
		int64(in.Seed),
		in.PayloadHash,
		in.Payload,
		in.StartDate,
		in.LockedUntil,
	).Scan(
		&plan.ID,
		&plan.OwnerUserID,
		&plan.ClientID,
		&plan.Version,
		&plan.StartDate,
		&plan.LockedUntil,
		&plan.IsActive,
		&plan.CreatedAt,
	)
	if err != nil {
		return storage.MealPlan{}, fmt.Errorf("failed to create meal plan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storage.MealPlan{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return plan, nil
}

func (s *mealPlansStorage) ListVersions(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]storage.MealPlan, error) {
	query := `
		SELECT id, owner_user_id, client_id, version, seed, payload_hash,
		       start_date, locked_until, is_active, created_at
		FROM meal_plans
		WHERE owner_user_id = $1 AND client_id = $2
		ORDER BY version DESC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plan versions: %w", err)
	}
	defer rows.Close()

	plans := []storage.MealPlan{}
	for rows.Next() {
		var plan storage.MealPlan
		var seed int64
		err := rows.Scan(
			&plan.ID,
			&plan.OwnerUserID,
			&plan.ClientID,
			&plan.Version,
			&seed,
			&plan.PayloadHash,
			&plan.StartDate,
			&plan.LockedUntil,
			&plan.IsActive,
			&plan.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan version: %w", err)
		}
		plan.Seed = uint64(seed)
		plans = append(plans, plan)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating meal plan versions: %w", rows.Err())
	}

	return plans, nil
}

func (s *mealPlansStorage) DeactivateActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) error {
	query := `
		UPDATE meal_plans
		SET is_active = false
		WHERE owner_user_id = $1 AND client_id = $2 AND is_active = true
	`

	result, err := s.pool.Exec(ctx, query, ownerUserID, clientID)
	if err != nil {
		return fmt.Errorf("failed to deactivate meal plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}
