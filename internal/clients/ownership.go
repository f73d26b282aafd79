package clients

import (
	"context"
	"errors"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/google/uuid"
)

// Getter is the slice of storage.Storage that ownership checks need.
type Getter interface {
	GetClient(ctx context.Context, id uuid.UUID) (*storage.Client, error)
}

// RequireOwned returns the client when it belongs to the caller. Missing
// clients and clients of other owners both yield ErrNotFound so that
// existence is not revealed.
func RequireOwned(ctx context.Context, getter Getter, id uuid.UUID) (*storage.Client, error) {
	if id == uuid.Nil {
		return nil, ErrNotFound
	}

	client, err := getter.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if client.OwnerUserID == "" || client.OwnerUserID != userctx.OwnerID(ctx) {
		return nil, ErrNotFound
	}
	return client, nil
}
