package product

import (
	"context"
)

// Filter is a field-keyed query filter. Values are either a direct match
// value or an operator map such as {"$lt": 2000} / {"$contains": "watch"}.
type Filter map[string]interface{}

// Changes maps column-level field names to replacement values.
type Changes map[string]interface{}

// Repository defines storage operations for products
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	Exists(ctx context.Context, productID string) (bool, error)
	Find(ctx context.Context, filter Filter, limit int) ([]*Product, error)
	Update(ctx context.Context, filter Filter, changes Changes) (matched int64, err error)
	Delete(ctx context.Context, filter Filter) (deleted int64, err error)

	// NextProductID issues the next sequential business ID ("P001", "P002", ...)
	NextProductID(ctx context.Context) (string, error)
}
