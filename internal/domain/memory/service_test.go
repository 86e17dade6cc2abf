package memory

import (
	"context"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/pkg/errors"
)

type fakeRepo struct {
	stored []*Memory

	similarResults []*Memory
	similarErr     error
	recentResults  []*Memory
	expiredDeleted int64

	similarCalls int
	recentCalls  int
}

func (r *fakeRepo) Store(ctx context.Context, m *Memory) error {
	r.stored = append(r.stored, m)
	return nil
}

func (r *fakeRepo) SearchSimilar(ctx context.Context, sessionID string, embedding pgvector.Vector, limit int) ([]*Memory, error) {
	r.similarCalls++
	if r.similarErr != nil {
		return nil, r.similarErr
	}
	return r.similarResults, nil
}

func (r *fakeRepo) GetRecent(ctx context.Context, sessionID string, limit int) ([]*Memory, error) {
	r.recentCalls++
	return r.recentResults, nil
}

func (r *fakeRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return r.expiredDeleted, nil
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (e *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

func (e *fakeEmbedder) Dimensions() int { return len(e.vec) }
func (e *fakeEmbedder) Name() string    { return "fake" }

func TestService_StoreWithEmbedding(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeEmbedder{vec: []float32{0.1, 0.2, 0.3}})

	m, err := svc.Store(context.Background(), "session-1", "user prefers bulk orders", MemoryPreference, 0.8)
	require.NoError(t, err)

	assert.True(t, m.HasEmbedding)
	assert.Equal(t, MemoryPreference, m.Type)
	require.Len(t, repo.stored, 1)
}

func TestService_StoreDegradesWithoutEmbedder(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	m, err := svc.Store(context.Background(), "session-1", "some fact", MemoryFact, 0.5)
	require.NoError(t, err)

	assert.False(t, m.HasEmbedding)
	require.Len(t, repo.stored, 1)
}

func TestService_StoreDegradesOnEmbedFailure(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeEmbedder{err: errors.New("quota exceeded")})

	m, err := svc.Store(context.Background(), "session-1", "some fact", MemoryFact, 0.5)
	require.NoError(t, err, "a failed embedding must not lose the memory")

	assert.False(t, m.HasEmbedding)
	require.Len(t, repo.stored, 1)
}

func TestService_StoreNormalizesInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	m, err := svc.Store(context.Background(), "session-1", "content", MemoryType("bogus"), 7)
	require.NoError(t, err)

	assert.Equal(t, MemoryFact, m.Type)
	assert.Equal(t, 0.5, m.Importance)
}

func TestService_StoreValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	_, err := svc.Store(context.Background(), "", "content", MemoryFact, 0.5)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Store(context.Background(), "session-1", "", MemoryFact, 0.5)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestService_RecallSemantic(t *testing.T) {
	repo := &fakeRepo{
		similarResults: []*Memory{{Content: "bulk discount preference"}},
	}
	svc := NewService(repo, &fakeEmbedder{vec: []float32{0.5}})

	results, err := svc.Recall(context.Background(), "session-1", "discounts", 5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 1, repo.similarCalls)
	assert.Equal(t, 0, repo.recentCalls)
}

func TestService_RecallFallsBackToRecency(t *testing.T) {
	tests := []struct {
		name     string
		embedder EmbeddingProvider
		repo     *fakeRepo
	}{
		{
			name:     "no embedder wired",
			embedder: nil,
			repo:     &fakeRepo{recentResults: []*Memory{{Content: "recent"}}},
		},
		{
			name:     "embedding fails",
			embedder: &fakeEmbedder{err: errors.New("quota exceeded")},
			repo:     &fakeRepo{recentResults: []*Memory{{Content: "recent"}}},
		},
		{
			name:     "vector search fails",
			embedder: &fakeEmbedder{vec: []float32{0.5}},
			repo: &fakeRepo{
				similarErr:    errors.New("index missing"),
				recentResults: []*Memory{{Content: "recent"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, tt.embedder)

			results, err := svc.Recall(context.Background(), "session-1", "anything", 5)
			require.NoError(t, err)

			require.Len(t, results, 1)
			assert.Equal(t, "recent", results[0].Content)
			assert.Equal(t, 1, tt.repo.recentCalls)
		})
	}
}

func TestService_RecallEmptyQueryUsesRecency(t *testing.T) {
	repo := &fakeRepo{recentResults: []*Memory{{Content: "recent"}}}
	svc := NewService(repo, &fakeEmbedder{vec: []float32{0.5}})

	results, err := svc.Recall(context.Background(), "session-1", "", 5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 0, repo.similarCalls)
}

func TestService_Sweep(t *testing.T) {
	repo := &fakeRepo{expiredDeleted: 3}
	svc := NewService(repo, nil)

	deleted, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
