package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"atlas/internal/domain/supplier"
	"atlas/pkg/errors"
)

// Compile-time check that we implement the interface
var _ supplier.Repository = (*SupplierRepository)(nil)

var supplierColumns = map[string]string{
	"supplier_id":    "supplier_id",
	"supplier_name":  "name",
	"contact_email":  "contact_email",
	"contact_number": "contact_number",
	"address":        "address",
	"rating":         "rating",
	"active":         "active",
}

// SupplierRepository implements supplier.Repository using sqlx
type SupplierRepository struct {
	db DBTX
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db DBTX) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Create inserts a new supplier
func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (
			id, supplier_id, name, contact_email, contact_number,
			address, rating, active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SupplierID, s.Name, s.ContactEmail, s.ContactNumber,
		s.Address, s.Rating, s.Active, s.CreatedAt, s.UpdatedAt,
	)

	return err
}

// GetBySupplierID retrieves a supplier by its business ID
func (r *SupplierRepository) GetBySupplierID(ctx context.Context, supplierID string) (*supplier.Supplier, error) {
	var s supplier.Supplier

	err := r.db.GetContext(ctx, &s, `SELECT * FROM suppliers WHERE supplier_id = $1`, supplierID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "supplier not found")
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Find retrieves suppliers matching the filter
func (r *SupplierRepository) Find(ctx context.Context, filter supplier.Filter, limit int) ([]*supplier.Supplier, error) {
	where, args, err := compileFilter(filter, supplierColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM suppliers WHERE %s ORDER BY supplier_id LIMIT $%d`,
		where, len(args)+1,
	)
	args = append(args, limit)

	var suppliers []*supplier.Supplier
	if err := r.db.SelectContext(ctx, &suppliers, query, args...); err != nil {
		return nil, err
	}

	return suppliers, nil
}

// Update modifies suppliers matching the filter and returns the match count
func (r *SupplierRepository) Update(ctx context.Context, filter supplier.Filter, changes supplier.Changes) (int64, error) {
	set, setArgs, err := compileChanges(changes, supplierColumns, 1)
	if err != nil {
		return 0, err
	}

	where, whereArgs, err := compileFilter(filter, supplierColumns, len(setArgs)+1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		`UPDATE suppliers SET %s, updated_at = NOW() WHERE %s`,
		set, where,
	)

	result, err := r.db.ExecContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete removes suppliers matching the filter and returns the delete count
func (r *SupplierRepository) Delete(ctx context.Context, filter supplier.Filter) (int64, error) {
	where, args, err := compileFilter(filter, supplierColumns, 1)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM suppliers WHERE %s`, where), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// NextSupplierID issues the next sequential business ID
func (r *SupplierRepository) NextSupplierID(ctx context.Context) (string, error) {
	return nextBusinessID(ctx, r.db, "suppliers", "supplier_id", supplier.IDPrefix)
}
