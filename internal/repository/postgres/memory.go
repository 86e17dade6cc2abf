package postgres

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"atlas/internal/domain/memory"
)

// Compile-time check
var _ memory.Repository = (*MemoryRepository)(nil)

// MemoryRepository implements memory.Repository using sqlx and pgvector
type MemoryRepository struct {
	db DBTX
}

// NewMemoryRepository creates a new memory repository
func NewMemoryRepository(db DBTX) *MemoryRepository {
	return &MemoryRepository{db: db}
}

// Store inserts a new memory
func (r *MemoryRepository) Store(ctx context.Context, m *memory.Memory) error {
	query := `
		INSERT INTO memories (
			id, session_id, type, content, embedding, has_embedding,
			importance, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	// NULL rather than a zero-length vector when no embedding was produced
	var embedding interface{}
	if m.HasEmbedding {
		embedding = m.Embedding
	}

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.SessionID, m.Type, m.Content, embedding, m.HasEmbedding,
		m.Importance, m.CreatedAt, m.ExpiresAt,
	)

	return err
}

// SearchSimilar performs semantic search using pgvector cosine distance.
// Rows stored without an embedding are excluded; they remain reachable
// through GetRecent.
func (r *MemoryRepository) SearchSimilar(ctx context.Context, sessionID string, embedding pgvector.Vector, limit int) ([]*memory.Memory, error) {
	var memories []*memory.Memory

	query := `
		SELECT * FROM memories
		WHERE session_id = $1
		  AND has_embedding
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY embedding <=> $2
		LIMIT $3`

	err := r.db.SelectContext(ctx, &memories, query, sessionID, embedding, limit)
	if err != nil {
		return nil, err
	}

	return memories, nil
}

// GetRecent retrieves the latest memories for a session, newest first
func (r *MemoryRepository) GetRecent(ctx context.Context, sessionID string, limit int) ([]*memory.Memory, error) {
	var memories []*memory.Memory

	// embedding is skipped here: it may be NULL and recency recall
	// has no use for the vector anyway
	query := `
		SELECT id, session_id, type, content, has_embedding,
		       importance, created_at, expires_at
		FROM memories
		WHERE session_id = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY importance DESC, created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &memories, query, sessionID, limit)
	if err != nil {
		return nil, err
	}

	return memories, nil
}

// DeleteExpired removes expired memories
func (r *MemoryRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
