package postgres

import (
	"context"
	"fmt"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type foodSelectionsStorage struct {
	pool *pgxpool.Pool
}

func newFoodSelectionsStorage(pool *pgxpool.Pool) *foodSelectionsStorage {
	return &foodSelectionsStorage{pool: pool}
}

func (s *foodSelectionsStorage) Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (storage.FoodSelection, bool, error) {
	query := `
		SELECT owner_user_id, client_id, food_ids, updated_at
		FROM food_selections
		WHERE owner_user_id = $1 AND client_id = $2
	`

	var sel storage.FoodSelection
	err := s.pool.QueryRow(ctx, query, ownerUserID, clientID).Scan(
		&sel.OwnerUserID,
		&sel.ClientID,
		&sel.FoodIDs,
		&sel.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return storage.FoodSelection{}, false, nil
	}
	if err != nil {
		return storage.FoodSelection{}, false, fmt.Errorf("failed to get food selection: %w", err)
	}

	return sel, true, nil
}

func (s *foodSelectionsStorage) Put(ctx context.Context, ownerUserID string, clientID uuid.UUID, foodIDs []string) (storage.FoodSelection, error) {
	query := `
		INSERT INTO food_selections (owner_user_id, client_id, food_ids, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner_user_id, client_id)
		DO UPDATE SET food_ids = EXCLUDED.food_ids, updated_at = NOW()
		RETURNING owner_user_id, client_id, food_ids, updated_at
	`

	if foodIDs == nil {
		foodIDs = []string{}
	}

	var sel storage.FoodSelection
	err := s.pool.QueryRow(ctx, query, ownerUserID, clientID, foodIDs).Scan(
		&sel.OwnerUserID,
		&sel.ClientID,
		&sel.FoodIDs,
		&sel.UpdatedAt,
	)
	if err != nil {
		return storage.FoodSelection{}, fmt.Errorf("failed to save food selection: %w", err)
	}

	return sel, nil
}
