package order

import (
	"context"
)

// Filter is a field-keyed query filter, same shape as product.Filter.
type Filter map[string]interface{}

// Changes maps field names to replacement values.
type Changes map[string]interface{}

// Repository defines storage operations for orders
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	Find(ctx context.Context, filter Filter, limit int) ([]*Order, error)
	Update(ctx context.Context, filter Filter, changes Changes) (matched int64, err error)
	Delete(ctx context.Context, filter Filter) (deleted int64, err error)

	// NextOrderID issues the next sequential business ID ("O001", "O002", ...)
	NextOrderID(ctx context.Context) (string, error)
}
