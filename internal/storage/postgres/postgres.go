package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the Postgres implementation of Storage.
type PostgresStorage struct {
	pool             *pgxpool.Pool
	foodSelections   *foodSelectionsStorage
	nutritionTargets *nutritionTargetsStorage
	mealPlans        *mealPlansStorage
}

func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:             pool,
		foodSelections:   newFoodSelectionsStorage(pool),
		nutritionTargets: newNutritionTargetsStorage(pool),
		mealPlans:        newMealPlansStorage(pool),
	}, nil
}

func (p *PostgresStorage) ListClients(ctx context.Context, ownerUserID string) ([]storage.Client, error) {
	query := `
		SELECT id, owner_user_id, name, notes, created_at, updated_at
		FROM clients
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := p.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []storage.Client{}
	for rows.Next() {
		var c storage.Client
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (p *PostgresStorage) GetClient(ctx context.Context, id uuid.UUID) (*storage.Client, error) {
	query := `
		SELECT id, owner_user_id, name, notes, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var c storage.Client
	err := p.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}

func (p *PostgresStorage) CreateClient(ctx context.Context, client *storage.Client) error {
	query := `
		INSERT INTO clients (id, owner_user_id, name, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := p.pool.Exec(ctx, query,
		client.ID,
		client.OwnerUserID,
		client.Name,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (p *PostgresStorage) UpdateClient(ctx context.Context, client *storage.Client) error {
	query := `
		UPDATE clients
		SET name = $2, notes = $3, updated_at = $4
		WHERE id = $1
		RETURNING owner_user_id, created_at
	`

	client.UpdatedAt = time.Now().UTC()

	err := p.pool.QueryRow(ctx, query, client.ID, client.Name, client.Notes, client.UpdatedAt).
		Scan(&client.OwnerUserID, &client.CreatedAt)
	if err == pgx.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}

// DeleteClient relies on ON DELETE CASCADE for selections, targets and plans.
func (p *PostgresStorage) DeleteClient(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) GetFoodSelectionsStorage() storage.FoodSelectionsStorage {
	return p.foodSelections
}

func (p *PostgresStorage) GetNutritionTargetsStorage() storage.NutritionTargetsStorage {
	return p.nutritionTargets
}

func (p *PostgresStorage) GetMealPlansStorage() storage.MealPlansStorage {
	return p.mealPlans
}
