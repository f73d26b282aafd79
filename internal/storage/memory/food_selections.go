package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

type foodSelectionsStorage struct {
	mu   sync.RWMutex
	data map[string]storage.FoodSelection
}

func newFoodSelectionsStorage() *foodSelectionsStorage {
	return &foodSelectionsStorage{
		data: make(map[string]storage.FoodSelection),
	}
}

func (s *foodSelectionsStorage) Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (storage.FoodSelection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel, ok := s.data[key(ownerUserID, clientID)]
	if !ok {
		return storage.FoodSelection{}, false, nil
	}

	sel.FoodIDs = append([]string(nil), sel.FoodIDs...)
	return sel, true, nil
}

func (s *foodSelectionsStorage) Put(ctx context.Context, ownerUserID string, clientID uuid.UUID, foodIDs []string) (storage.FoodSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := storage.FoodSelection{
		OwnerUserID: ownerUserID,
		ClientID:    clientID,
		FoodIDs:     append([]string{}, foodIDs...),
		UpdatedAt:   time.Now().UTC(),
	}
	s.data[key(ownerUserID, clientID)] = sel

	sel.FoodIDs = append([]string{}, foodIDs...)
	return sel, nil
}

func (s *foodSelectionsStorage) deleteClient(ownerUserID string, clientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key(ownerUserID, clientID))
}
