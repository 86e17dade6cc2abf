package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/domain/memory"
	"atlas/internal/domain/product"
	"atlas/internal/testsupport"
	"atlas/internal/testsupport/seeds"
)

// These tests run against a real PostgreSQL instance and skip when the
// integration environment is not configured. Each test works inside a
// transaction that is rolled back afterwards.

func TestProductRepository_FindByFilter(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	seeder := seeds.New(helper.Tx())
	repo := NewProductRepository(helper.Tx())
	ctx := context.Background()

	seeder.Product().WithProductID("P001").WithName("ProBook 15 Laptop").
		WithCategory("Electronics").WithPrice(1499).MustInsert()
	seeder.Product().WithProductID("P002").WithName("Wireless Mouse").
		WithCategory("Accessories").WithPrice(29.99).MustInsert()

	results, err := repo.Find(ctx, product.Filter{"category": "Electronics"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P001", results[0].ProductID)

	results, err = repo.Find(ctx, product.Filter{
		"price": map[string]interface{}{"$lt": 100.0},
	}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P002", results[0].ProductID)

	results, err = repo.Find(ctx, product.Filter{
		"product_name": map[string]interface{}{"$contains": "mouse"},
	}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Wireless Mouse", results[0].Name)
}

func TestProductRepository_NextProductID(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	seeder := seeds.New(helper.Tx())
	repo := NewProductRepository(helper.Tx())
	ctx := context.Background()

	id, err := repo.NextProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "P001", id, "empty table starts the sequence")

	seeder.Product().WithProductID("P001").MustInsert()
	seeder.Product().WithProductID("P002").WithName("Another").MustInsert()

	id, err = repo.NextProductID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "P003", id)
}

func TestProductRepository_NextProductID_BeyondPadding(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	seeder := seeds.New(helper.Tx())
	repo := NewProductRepository(helper.Tx())

	seeder.Product().WithProductID("P999").MustInsert()
	seeder.Product().WithProductID("P1000").WithName("Another").MustInsert()

	id, err := repo.NextProductID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "P1001", id, "length-aware ordering must win over lexicographic")
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	seeder := seeds.New(helper.Tx())
	repo := NewProductRepository(helper.Tx())
	ctx := context.Background()

	seeder.Product().WithProductID("P001").WithPrice(1499).MustInsert()

	matched, err := repo.Update(ctx,
		product.Filter{"product_id": "P001"},
		product.Changes{"price": 1599, "stock_count": 100},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	got, err := repo.GetByProductID(ctx, "P001")
	require.NoError(t, err)
	assert.True(t, got.Price.IntPart() == 1599)
	assert.Equal(t, 100, got.StockCount)

	deleted, err := repo.Delete(ctx, product.Filter{"product_id": "P001"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByProductID(ctx, "P001")
	assert.Error(t, err)
}

func TestMemoryRepository_RecencyRecall(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	seeder := seeds.New(helper.Tx())
	repo := NewMemoryRepository(helper.Tx())
	ctx := context.Background()

	session := testsupport.UniqueSessionID()
	seeder.Memory().WithSessionID(session).WithContent("low importance").
		WithImportance(0.2).MustInsert()
	seeder.Memory().WithSessionID(session).WithContent("high importance").
		WithImportance(0.9).MustInsert()
	seeder.Memory().WithSessionID("other_session").WithContent("unrelated").MustInsert()

	results, err := repo.GetRecent(ctx, session, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "high importance", results[0].Content)
}

func TestMemoryRepository_StoreWithoutEmbedding(t *testing.T) {
	helper := testsupport.NewTestPostgres(t)
	repo := NewMemoryRepository(helper.Tx())
	ctx := context.Background()

	svcMem := seeds.NewMemoryBuilder(helper.Tx(), ctx).
		WithSessionID(testsupport.UniqueSessionID()).
		WithContent("no vector").Build()

	require.NoError(t, repo.Store(ctx, svcMem))

	results, err := repo.GetRecent(ctx, svcMem.SessionID, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].HasEmbedding)
	assert.Equal(t, memory.MemoryFact, results[0].Type)
}
