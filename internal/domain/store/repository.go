package store

import (
	"context"

	"lifesprint/internal/domain/sync"
)

type Repository interface {
	Get(ctx context.Context, userID string, kind sync.Kind) (Document, error)
	Upsert(ctx context.Context, doc Document) (Document, error)
	Delete(ctx context.Context, userID string, kind sync.Kind) error
}
