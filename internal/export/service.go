package export

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/blob"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Service renders exports and hands them out through the blob store.
type Service struct {
	store      blob.Store
	presignTTL int
	logger     Logger
}

// NewService accepts a nil store; exports are then only streamed.
func NewService(store blob.Store, presignTTLSeconds int, logger Logger) *Service {
	if presignTTLSeconds <= 0 {
		presignTTLSeconds = 900
	}
	return &Service{
		store:      store,
		presignTTL: presignTTLSeconds,
		logger:     logger,
	}
}

// Publish renders doc and stores it under prefix. When the store can
// presign, the result carries a URL and no data.
func (s *Service) Publish(ctx context.Context, prefix string, doc Document, kind Kind, f Format) (Result, error) {
	data, err := Render(doc, kind, f)
	if err != nil {
		return Result{}, err
	}

	filename := doc.Filename(kind, f)
	res := Result{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    filename,
	}

	if s.store == nil {
		return res, nil
	}

	key := path.Join("exports", prefix, filename)
	if _, err := s.store.PutObject(ctx, key, data, res.ContentType); err != nil {
		s.logf("WARN export: put_failed key=%s err=%v", key, err)
		return res, nil
	}
	res.Key = key

	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		if !errors.Is(err, blob.ErrPresignUnsupported) {
			s.logf("WARN export: presign_failed key=%s err=%v", key, err)
		}
		return res, nil
	}

	s.logf("INFO export: published key=%s bytes=%d", key, len(data))
	return Result{
		Key:         key,
		URL:         url,
		ExpiresIn:   s.presignTTL,
		ContentType: res.ContentType,
		Filename:    filename,
	}, nil
}

func (s *Service) logf(format string, v ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, v...)
}

// Prefix is the per-client folder of a plan's exports.
func Prefix(ownerUserID, clientID string) string {
	return fmt.Sprintf("%s/%s", ownerUserID, clientID)
}
