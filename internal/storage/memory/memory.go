package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

// MemoryStorage is the in-memory Storage used when DATABASE_URL is unset.
type MemoryStorage struct {
	mu               sync.RWMutex
	clients          map[uuid.UUID]storage.Client
	foodSelections   *foodSelectionsStorage
	nutritionTargets *nutritionTargetsStorage
	mealPlans        *mealPlansStorage
}

func New() *MemoryStorage {
	return &MemoryStorage{
		clients:          make(map[uuid.UUID]storage.Client),
		foodSelections:   newFoodSelectionsStorage(),
		nutritionTargets: newNutritionTargetsStorage(),
		mealPlans:        newMealPlansStorage(),
	}
}

func (m *MemoryStorage) ListClients(ctx context.Context, ownerUserID string) ([]storage.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clients := make([]storage.Client, 0, len(m.clients))
	for _, c := range m.clients {
		if c.OwnerUserID == ownerUserID {
			clients = append(clients, c)
		}
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})

	return clients, nil
}

func (m *MemoryStorage) GetClient(ctx context.Context, id uuid.UUID) (*storage.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.clients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &c, nil
}

func (m *MemoryStorage) CreateClient(ctx context.Context, client *storage.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	m.clients[client.ID] = *client

	return nil
}

func (m *MemoryStorage) UpdateClient(ctx context.Context, client *storage.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.clients[client.ID]
	if !ok {
		return storage.ErrNotFound
	}

	client.OwnerUserID = existing.OwnerUserID
	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = time.Now().UTC()
	m.clients[client.ID] = *client

	return nil
}

func (m *MemoryStorage) DeleteClient(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	c, ok := m.clients[id]
	if !ok {
		m.mu.Unlock()
		return storage.ErrNotFound
	}
	delete(m.clients, id)
	m.mu.Unlock()

	m.foodSelections.deleteClient(c.OwnerUserID, id)
	m.nutritionTargets.deleteClient(c.OwnerUserID, id)
	m.mealPlans.deleteClient(c.OwnerUserID, id)

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) GetFoodSelectionsStorage() storage.FoodSelectionsStorage {
	return m.foodSelections
}

func (m *MemoryStorage) GetNutritionTargetsStorage() storage.NutritionTargetsStorage {
	return m.nutritionTargets
}

func (m *MemoryStorage) GetMealPlansStorage() storage.MealPlansStorage {
	return m.mealPlans
}

func key(ownerUserID string, clientID uuid.UUID) string {
	return ownerUserID + ":" + clientID.String()
}
