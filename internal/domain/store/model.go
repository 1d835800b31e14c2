package store

import (
	"encoding/json"
	"time"

	"lifesprint/internal/domain/sync"
)

// Document is a single per-user synced payload. The server treats the
// payload as opaque JSON; merging happens on the client side.
type Document struct {
	UserID    string          `json:"user_id"`
	Kind      sync.Kind       `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}
