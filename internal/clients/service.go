package clients

import (
	"context"
	"errors"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

const maxNameLength = 120

var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTooLong = errors.New("name is too long")
	ErrNotFound    = errors.New("client not found")
)

type Service struct {
	storage storage.Storage
}

func NewService(st storage.Storage) *Service {
	return &Service{storage: st}
}

// ListClients returns the caller's clients, oldest first.
func (s *Service) ListClients(ctx context.Context) ([]ClientDTO, error) {
	clients, err := s.storage.ListClients(ctx, userctx.OwnerID(ctx))
	if err != nil {
		return nil, err
	}

	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, toDTO(c))
	}

	return dtos, nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(*client)
	return &dto, nil
}

func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	client := &storage.Client{
		OwnerUserID: userctx.OwnerID(ctx),
		Name:        name,
		Notes:       strings.TrimSpace(req.Notes),
	}

	if err := s.storage.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	dto := toDTO(*client)
	return &dto, nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	client, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		client.Name = name
	}
	if req.Notes != nil {
		client.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.storage.UpdateClient(ctx, client); err != nil {
		return nil, err
	}

	dto := toDTO(*client)
	return &dto, nil
}

// DeleteClient removes the client together with its selection, targets and plans.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.owned(ctx, id); err != nil {
		return err
	}

	return s.storage.DeleteClient(ctx, id)
}

func (s *Service) owned(ctx context.Context, id uuid.UUID) (*storage.Client, error) {
	return RequireOwned(ctx, s.storage, id)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if len([]rune(name)) > maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func toDTO(c storage.Client) ClientDTO {
	return ClientDTO{
		ID:          c.ID,
		OwnerUserID: c.OwnerUserID,
		Name:        c.Name,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
