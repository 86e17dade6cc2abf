package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"atlas/internal/domain/memory"
)

// MemoryBuilder provides a fluent API for creating Memory entities
type MemoryBuilder struct {
	db     DBTX
	ctx    context.Context
	entity *memory.Memory
}

// NewMemoryBuilder creates a new MemoryBuilder with sensible defaults
func NewMemoryBuilder(db DBTX, ctx context.Context) *MemoryBuilder {
	return &MemoryBuilder{
		db:  db,
		ctx: ctx,
		entity: &memory.Memory{
			ID:         uuid.New(),
			SessionID:  "test_session",
			Type:       memory.MemoryFact,
			Content:    "Test memory content",
			Importance: 0.5,
			CreatedAt:  time.Now(),
		},
	}
}

// WithSessionID sets the session ID
func (b *MemoryBuilder) WithSessionID(sessionID string) *MemoryBuilder {
	b.entity.SessionID = sessionID
	return b
}

// WithType sets the memory type
func (b *MemoryBuilder) WithType(memType memory.MemoryType) *MemoryBuilder {
	b.entity.Type = memType
	return b
}

// WithContent sets the memory content
func (b *MemoryBuilder) WithContent(content string) *MemoryBuilder {
	b.entity.Content = content
	return b
}

// WithImportance sets the importance score
func (b *MemoryBuilder) WithImportance(importance float64) *MemoryBuilder {
	b.entity.Importance = importance
	return b
}

// WithEmbedding sets the embedding vector
func (b *MemoryBuilder) WithEmbedding(vec []float32) *MemoryBuilder {
	b.entity.Embedding = pgvector.NewVector(vec)
	b.entity.HasEmbedding = true
	return b
}

// WithExpiresAt sets the expiration time
func (b *MemoryBuilder) WithExpiresAt(expiresAt time.Time) *MemoryBuilder {
	b.entity.ExpiresAt = &expiresAt
	return b
}

// Build returns the built entity without inserting to DB
func (b *MemoryBuilder) Build() *memory.Memory {
	return b.entity
}

// Insert inserts the memory into the database and returns the entity
func (b *MemoryBuilder) Insert() (*memory.Memory, error) {
	query := `
		INSERT INTO memories (
			id, session_id, type, content, embedding, has_embedding,
			importance, created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var embedding interface{}
	if b.entity.HasEmbedding {
		embedding = b.entity.Embedding
	}

	_, err := b.db.ExecContext(
		b.ctx,
		query,
		b.entity.ID,
		b.entity.SessionID,
		b.entity.Type,
		b.entity.Content,
		embedding,
		b.entity.HasEmbedding,
		b.entity.Importance,
		b.entity.CreatedAt,
		b.entity.ExpiresAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert memory: %w", err)
	}

	return b.entity, nil
}

// MustInsert inserts the memory and panics on error (useful for tests)
func (b *MemoryBuilder) MustInsert() *memory.Memory {
	entity, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return entity
}
