package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Memory represents a stored piece of conversation context with an
// optional vector embedding for semantic recall
type Memory struct {
	ID        uuid.UUID `db:"id"`
	SessionID string    `db:"session_id"`

	Type    MemoryType `db:"type"`
	Content string     `db:"content"`

	// Embedding is zero-valued when the embedding provider was
	// unavailable at store time; such rows are still reachable through
	// recency-ordered recall.
	Embedding    pgvector.Vector `db:"embedding"`
	HasEmbedding bool            `db:"has_embedding"`

	Importance float64 `db:"importance"` // 0-1, for retrieval ranking

	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt *time.Time `db:"expires_at"` // TTL for short-lived context
}

// MemoryType defines the type of memory
type MemoryType string

const (
	MemoryFact       MemoryType = "fact"       // Stored information about records
	MemoryPreference MemoryType = "preference" // User preference
	MemoryQuery      MemoryType = "query"      // Something the user asked about
)

// Valid checks if memory type is valid
func (m MemoryType) Valid() bool {
	switch m {
	case MemoryFact, MemoryPreference, MemoryQuery:
		return true
	}
	return false
}

// String returns string representation
func (m MemoryType) String() string {
	return string(m)
}
