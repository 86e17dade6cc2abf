package memory

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// Repository handles memory persistence and recall
type Repository interface {
	Store(ctx context.Context, m *Memory) error

	// SearchSimilar performs vector search over embedded memories for a session
	SearchSimilar(ctx context.Context, sessionID string, embedding pgvector.Vector, limit int) ([]*Memory, error)

	// GetRecent returns the latest memories for a session, newest first
	GetRecent(ctx context.Context, sessionID string, limit int) ([]*Memory, error)

	// DeleteExpired removes memories past their TTL
	DeleteExpired(ctx context.Context) (int64, error)
}
