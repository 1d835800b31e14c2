package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/store"
	"lifesprint/internal/domain/sync"
)

type StoreRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewStoreRepository(storage *Storage, log *slog.Logger) *StoreRepository {
	return &StoreRepository{
		pool: storage.Pool(),
		log:  log.With("component", "store_repository"),
	}
}

func (r *StoreRepository) Get(ctx context.Context, userID string, kind sync.Kind) (store.Document, error) {
	const query = `
		SELECT user_id, kind, payload, updated_at
		FROM documents
		WHERE user_id = $1 AND kind = $2`

	row := r.pool.QueryRow(ctx, query, userID, string(kind))

	var doc store.Document
	var kindStr string
	if err := row.Scan(&doc.UserID, &kindStr, &doc.Payload, &doc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Document{}, store.ErrNotFound
		}
		r.log.Error("failed to get document",
			"user_id", userID, "kind", string(kind), "error", err)
		return store.Document{}, fmt.Errorf("get document: %w", err)
	}
	doc.Kind = sync.Kind(kindStr)

	return doc, nil
}

func (r *StoreRepository) Upsert(ctx context.Context, doc store.Document) (store.Document, error) {
	const query = `
		INSERT INTO documents (user_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, kind)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
		RETURNING updated_at`

	row := r.pool.QueryRow(ctx, query, doc.UserID, string(doc.Kind), doc.Payload)
	if err := row.Scan(&doc.UpdatedAt); err != nil {
		r.log.Error("failed to upsert document",
			"user_id", doc.UserID, "kind", string(doc.Kind), "error", err)
		return store.Document{}, fmt.Errorf("upsert document: %w", err)
	}

	return doc, nil
}

func (r *StoreRepository) Delete(ctx context.Context, userID string, kind sync.Kind) error {
	const query = `DELETE FROM documents WHERE user_id = $1 AND kind = $2`

	tag, err := r.pool.Exec(ctx, query, userID, string(kind))
	if err != nil {
		r.log.Error("failed to delete document",
			"user_id", userID, "kind", string(kind), "error", err)
		return fmt.Errorf("delete document: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
