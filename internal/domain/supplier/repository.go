package supplier

import (
	"context"
)

// Filter is a field-keyed query filter, same shape as product.Filter.
type Filter map[string]interface{}

// Changes maps field names to replacement values.
type Changes map[string]interface{}

// Repository defines storage operations for suppliers
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetBySupplierID(ctx context.Context, supplierID string) (*Supplier, error)
	Find(ctx context.Context, filter Filter, limit int) ([]*Supplier, error)
	Update(ctx context.Context, filter Filter, changes Changes) (matched int64, err error)
	Delete(ctx context.Context, filter Filter) (deleted int64, err error)

	// NextSupplierID issues the next sequential business ID ("S001", "S002", ...)
	NextSupplierID(ctx context.Context) (string, error)
}
