package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

type mealPlansStorage struct {
	mu sync.RWMutex
	// versions per owner:client, oldest first
	plans map[string][]storage.MealPlan
}

func newMealPlansStorage() *mealPlansStorage {
	return &mealPlansStorage{
		plans: make(map[string][]storage.MealPlan),
	}
}

func (s *mealPlansStorage) GetActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) (storage.MealPlan, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plans[key(ownerUserID, clientID)] {
		if p.IsActive {
			return copyPlan(p, true), true, nil
		}
	}

	return storage.MealPlan{}, false, nil
}

func (s *mealPlansStorage) CreateVersion(ctx context.Context, ownerUserID string, clientID uuid.UUID, in storage.MealPlanCreate) (storage.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(ownerUserID, clientID)
	versions := s.plans[k]

	next := 1
	for i := range versions {
		versions[i].IsActive = false
		if versions[i].Version >= next {
			next = versions[i].Version + 1
		}
	}

	plan := storage.MealPlan{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		ClientID:    clientID,
		Version:     next,
		Seed:        in.Seed,
		PayloadHash: in.PayloadHash,
		Payload:     append([]byte(nil), in.Payload...),
		StartDate:   in.StartDate,
		LockedUntil: in.LockedUntil,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	s.plans[k] = append(versions, plan)

	return copyPlan(plan, true), nil
}

func (s *mealPlansStorage) ListVersions(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]storage.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.plans[key(ownerUserID, clientID)]
	result := make([]storage.MealPlan, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		result = append(result, copyPlan(versions[i], false))
	}

	return result, nil
}

func (s *mealPlansStorage) DeactivateActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := s.plans[key(ownerUserID, clientID)]
	for i := range versions {
		if versions[i].IsActive {
			versions[i].IsActive = false
			return nil
		}
	}

	return storage.ErrNotFound
}

func (s *mealPlansStorage) deleteClient(ownerUserID string, clientID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, key(ownerUserID, clientID))
}

func copyPlan(p storage.MealPlan, withPayload bool) storage.MealPlan {
	if withPayload {
		p.Payload = append([]byte(nil), p.Payload...)
	} else {
		p.Payload = nil
	}
	return p
}
