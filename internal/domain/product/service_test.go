package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/pkg/errors"
)

type fakeRepo struct {
	products map[string]*Product
	nextID   int

	findResult    []*Product
	updateMatched int64
	deleteCount   int64
	failWith      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[string]*Product), nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, p *Product) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.products[p.ProductID] = p
	return nil
}

func (r *fakeRepo) GetByProductID(ctx context.Context, productID string) (*Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, errors.Wrap(errors.ErrNotFound, "product not found")
	}
	return p, nil
}

func (r *fakeRepo) Exists(ctx context.Context, productID string) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

func (r *fakeRepo) Find(ctx context.Context, filter Filter, limit int) ([]*Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if limit < len(r.findResult) {
		return r.findResult[:limit], nil
	}
	return r.findResult, nil
}

func (r *fakeRepo) Update(ctx context.Context, filter Filter, changes Changes) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	return r.updateMatched, nil
}

func (r *fakeRepo) Delete(ctx context.Context, filter Filter) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	return r.deleteCount, nil
}

func (r *fakeRepo) NextProductID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("%s%03d", IDPrefix, r.nextID)
	r.nextID++
	return id, nil
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateInput{
		Name:       "ProBook 15 Laptop",
		Price:      decimal.NewFromInt(1499),
		StockCount: 42,
		Category:   "Electronics",
		Supplier:   "S001",
		Rating:     4.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "P001", p.ProductID)
	assert.Equal(t, "ProBook 15 Laptop", p.Name)
	assert.False(t, p.AddedDate.IsZero())

	// Sequential business IDs
	p2, err := svc.Create(context.Background(), CreateInput{
		Name:  "Wireless Mouse",
		Price: decimal.NewFromFloat(29.99),
	})
	require.NoError(t, err)
	assert.Equal(t, "P002", p2.ProductID)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	tests := []struct {
		name  string
		input CreateInput
		field string
	}{
		{
			name:  "missing name",
			input: CreateInput{Price: decimal.NewFromInt(10)},
			field: "product_name",
		},
		{
			name:  "zero price",
			input: CreateInput{Name: "Lamp"},
			field: "price",
		},
		{
			name:  "negative price",
			input: CreateInput{Name: "Lamp", Price: decimal.NewFromInt(-5)},
			field: "price",
		},
		{
			name:  "negative stock",
			input: CreateInput{Name: "Lamp", Price: decimal.NewFromInt(10), StockCount: -1},
			field: "stock_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			require.Error(t, err)

			var vErr *errors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestService_FindClampsLimit(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 150; i++ {
		repo.findResult = append(repo.findResult, &Product{ProductID: fmt.Sprintf("P%03d", i+1)})
	}
	svc := NewService(repo)

	results, err := svc.Find(context.Background(), Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, results, maxQueryResults)

	results, err = svc.Find(context.Background(), Filter{}, 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestService_UpdateNoMatchesIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.updateMatched = 0
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), Filter{"product_id": "P999"}, Changes{"price": 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestService_UpdateEmptyChanges(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Update(context.Background(), Filter{"product_id": "P001"}, Changes{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestService_DeleteNoMatchesIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.deleteCount = 0
	svc := NewService(repo)

	_, err := svc.Delete(context.Background(), Filter{"product_id": "P999"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
