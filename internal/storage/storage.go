package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups and deletes that match nothing.
var ErrNotFound = errors.New("not found")

// Client is a person the coach plans meals for.
type Client struct {
	ID          uuid.UUID
	OwnerUserID string // "default" when auth is off
	Name        string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Storage is the root store; feature stores hang off the concrete types.
type Storage interface {
	ListClients(ctx context.Context, ownerUserID string) ([]Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	CreateClient(ctx context.Context, client *Client) error
	UpdateClient(ctx context.Context, client *Client) error
	// DeleteClient removes the client and everything stored for it.
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// Close releases the connection pool (Postgres).
	Close() error
}

// FoodSelectionsStorage keeps the catalog ids a client picked.
type FoodSelectionsStorage interface {
	Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (FoodSelection, bool, error)
	// Put replaces the whole selection.
	Put(ctx context.Context, ownerUserID string, clientID uuid.UUID, foodIDs []string) (FoodSelection, error)
}

type FoodSelection struct {
	OwnerUserID string
	ClientID    uuid.UUID
	FoodIDs     []string
	UpdatedAt   time.Time
}

// NutritionTargetsStorage keeps one daily target per client.
type NutritionTargetsStorage interface {
	// Get returns nil, nil when nothing is stored.
	Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*NutritionTarget, error)
	Upsert(ctx context.Context, ownerUserID string, clientID uuid.UUID, upsert NutritionTargetUpsert) (*NutritionTarget, error)
}

type NutritionTarget struct {
	ID           uuid.UUID
	OwnerUserID  string
	ClientID     uuid.UUID
	CaloriesKcal int
	ProteinG     int
	FatG         int
	CarbsG       int
	FiberG       int
	BodyweightKg float64 // 0 = unknown
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NutritionTargetUpsert struct {
	CaloriesKcal int
	ProteinG     int
	FatG         int
	CarbsG       int
	FiberG       int
	BodyweightKg float64
}

// MealPlansStorage keeps versioned, immutable weekly plans. At most one
// version per client is active.
type MealPlansStorage interface {
	GetActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) (MealPlan, bool, error)
	// CreateVersion stores a new active version and deactivates the previous one.
	CreateVersion(ctx context.Context, ownerUserID string, clientID uuid.UUID, in MealPlanCreate) (MealPlan, error)
	// ListVersions returns metadata only (no payload), newest first.
	ListVersions(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]MealPlan, error)
	// DeactivateActive returns ErrNotFound when no version is active.
	DeactivateActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) error
}

type MealPlan struct {
	ID          uuid.UUID
	OwnerUserID string
	ClientID    uuid.UUID
	Version     int
	Seed        uint64
	PayloadHash string // hex sha256 of Payload
	Payload     []byte // JSON
	StartDate   time.Time
	LockedUntil time.Time
	IsActive    bool
	CreatedAt   time.Time
}

type MealPlanCreate struct {
	Seed        uint64
	PayloadHash string
	Payload     []byte
	StartDate   time.Time
	LockedUntil time.Time
}
