package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// EmbeddingProvider generates vector embeddings for text.
// Implemented by internal/adapters/embeddings.
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Name() string
}

// Service provides memory store and recall operations.
// Recall degrades from semantic search to recency ordering when the
// embedding provider is missing or fails.
type Service struct {
	repo     Repository
	embedder EmbeddingProvider
	log      *logger.Logger
}

// NewService constructs a memory service. embedder may be nil.
func NewService(repo Repository, embedder EmbeddingProvider) *Service {
	return &Service{repo: repo, embedder: embedder, log: logger.Get().With("component", "memory_service")}
}

// Store persists a memory entry, embedding its content when possible
func (s *Service) Store(ctx context.Context, sessionID, content string, memType MemoryType, importance float64) (*Memory, error) {
	if sessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "session id is required")
	}
	if content == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "content is required")
	}
	if !memType.Valid() {
		memType = MemoryFact
	}
	if importance <= 0 || importance > 1 {
		importance = 0.5
	}

	m := &Memory{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Type:       memType,
		Content:    content,
		Importance: importance,
		CreatedAt:  time.Now(),
	}

	if s.embedder != nil {
		vec, err := s.embedder.GenerateEmbedding(ctx, content)
		if err != nil {
			// Store without embedding rather than losing the memory
			s.log.Warnf("Embedding failed, storing without vector: %v", err)
		} else {
			m.Embedding = pgvector.NewVector(vec)
			m.HasEmbedding = true
		}
	}

	if err := s.repo.Store(ctx, m); err != nil {
		return nil, errors.Wrap(err, "store memory")
	}

	return m, nil
}

// Recall returns memories relevant to the query. Semantic search when an
// embedding can be produced, recency order otherwise.
func (s *Service) Recall(ctx context.Context, sessionID, query string, limit int) ([]*Memory, error) {
	if sessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "session id is required")
	}
	if limit <= 0 {
		limit = 5
	}

	if s.embedder != nil && query != "" {
		vec, err := s.embedder.GenerateEmbedding(ctx, query)
		if err == nil {
			results, searchErr := s.repo.SearchSimilar(ctx, sessionID, pgvector.NewVector(vec), limit)
			if searchErr == nil {
				return results, nil
			}
			s.log.Warnf("Semantic search failed, falling back to recency: %v", searchErr)
		} else {
			s.log.Warnf("Query embedding failed, falling back to recency: %v", err)
		}
	}

	results, err := s.repo.GetRecent(ctx, sessionID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "recall memory")
	}
	return results, nil
}

// Sweep deletes expired memories and returns how many were removed
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "sweep expired memories")
	}
	if removed > 0 {
		s.log.Debugf("Swept %d expired memories", removed)
	}
	return removed, nil
}
