package nutrition

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/clients"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Service handles nutrition targets business logic.
type Service struct {
	clients        clients.Getter
	targetsStorage storage.NutritionTargetsStorage
}

func NewService(clientStore clients.Getter, targetsStorage storage.NutritionTargetsStorage) *Service {
	return &Service{
		clients:        clientStore,
		targetsStorage: targetsStorage,
	}
}

// GetOrDefault returns the client's targets, or defaults when none are stored.
// The bool is true for defaults.
func (s *Service) GetOrDefault(ctx context.Context, ownerUserID string, clientID uuid.UUID) (TargetsDTO, bool, error) {
	if err := s.checkClient(ctx, clientID); err != nil {
		return TargetsDTO{}, false, err
	}

	target, err := s.targetsStorage.Get(ctx, ownerUserID, clientID)
	if err != nil {
		return TargetsDTO{}, false, fmt.Errorf("failed to get nutrition targets: %w", err)
	}

	if target == nil {
		return GetDefaultTargets(clientID), true, nil
	}

	return toDTO(target), false, nil
}

// Upsert creates or updates nutrition targets for a client.
func (s *Service) Upsert(ctx context.Context, ownerUserID string, req UpsertTargetsRequest) (TargetsDTO, error) {
	if err := req.Validate(); err != nil {
		return TargetsDTO{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return TargetsDTO{}, err
	}

	upsert := storage.NutritionTargetUpsert{
		CaloriesKcal: req.CaloriesKcal,
		ProteinG:     req.ProteinG,
		FatG:         req.FatG,
		CarbsG:       req.CarbsG,
		FiberG:       req.FiberG,
		BodyweightKg: req.BodyweightKg,
	}

	target, err := s.targetsStorage.Upsert(ctx, ownerUserID, req.ClientID, upsert)
	if err != nil {
		return TargetsDTO{}, fmt.Errorf("failed to upsert nutrition targets: %w", err)
	}

	return toDTO(target), nil
}

func (s *Service) checkClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := clients.RequireOwned(ctx, s.clients, clientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}
	return nil
}

func toDTO(t *storage.NutritionTarget) TargetsDTO {
	return TargetsDTO{
		ClientID:     t.ClientID,
		CaloriesKcal: t.CaloriesKcal,
		ProteinG:     t.ProteinG,
		FatG:         t.FatG,
		CarbsG:       t.CarbsG,
		FiberG:       t.FiberG,
		BodyweightKg: t.BodyweightKg,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
