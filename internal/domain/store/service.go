package store

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/sync"
)

type Servicer interface {
	Get(ctx context.Context, userID string, kind sync.Kind) (Document, error)
	Put(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) (Document, error)
	Delete(ctx context.Context, userID string, kind sync.Kind) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) Get(ctx context.Context, userID string, kind sync.Kind) (Document, error) {
	if err := validate(userID, kind); err != nil {
		return Document{}, err
	}

	return s.repo.Get(ctx, userID, kind)
}

func (s *Service) Put(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) (Document, error) {
	if err := validate(userID, kind); err != nil {
		return Document{}, err
	}
	if !json.Valid(payload) {
		return Document{}, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidInput)
	}

	doc, err := s.repo.Upsert(ctx, Document{
		UserID:  userID,
		Kind:    kind,
		Payload: payload,
	})
	if err != nil {
		return Document{}, err
	}

	s.log.Debug("document stored",
		"user_id", userID,
		"kind", string(kind),
	)
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, userID string, kind sync.Kind) error {
	if err := validate(userID, kind); err != nil {
		return err
	}

	return s.repo.Delete(ctx, userID, kind)
}

func validate(userID string, kind sync.Kind) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	return nil
}
