package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

type nutritionTargetsStorage struct {
	mu   sync.RWMutex
	data map[string]*storage.NutritionTarget
}

func newNutritionTargetsStorage() *nutritionTargetsStorage {
	return &nutritionTargetsStorage{
		data: make(map[string]*storage.NutritionTarget),
	}
}

func (s *nutritionTargetsStorage) Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*storage.NutritionTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target, exists := s.data[key(ownerUserID, clientID)]
	if !exists {
		return nil, nil
	}

	result := *target
	return &result, nil
}

func (s *nutritionTargetsStorage) Upsert(ctx context.Context, ownerUserID string, clientID uuid.UUID, upsert storage.NutritionTargetUpsert) (*storage.NutritionTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(ownerUserID, clientID)
	now := time.Now().UTC()

	existing, exists := s.data[k]
	if !exists {
		existing = &storage.NutritionTarget{
			ID:          uuid.New(),
			OwnerUserID: ownerUserID,
			ClientID:    clientID,
			CreatedAt:   now,
		}
		s.data[k] = existing
	}

	existing.CaloriesKcal = upsert.CaloriesKcal
	existing.ProteinG = upsert.ProteinG
	existing.FatG = upsert.FatG
	existing.CarbsG = upsert.CarbsG
	existing.FiberG = upsert.FiberG
	existing.BodyweightKg = upsert.BodyweightKg
	existing.UpdatedAt = now

	result := *existing
	return &result, nil
}

func (s *nutritionTargetsStorage) deleteClient(ownerUserID string, clientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key(ownerUserID, clientID))
}
