package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"atlas/internal/domain/product"
	"atlas/pkg/errors"
)

// Compile-time check that we implement the interface
var _ product.Repository = (*ProductRepository)(nil)

// productColumns maps agent-facing field names to table columns
var productColumns = map[string]string{
	"product_id":            "product_id",
	"product_name":          "name",
	"category":              "category",
	"price":                 "price",
	"stock_count":           "stock_count",
	"units_sold_last_month": "units_sold_last_month",
	"units_sold_this_month": "units_sold_this_month",
	"rating":                "rating",
	"supplier":              "supplier",
	"added_date":            "added_date",
}

// ProductRepository implements product.Repository using sqlx
type ProductRepository struct {
	db DBTX
}

// NewProductRepository creates a new product repository
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (
			id, product_id, name, category, price, stock_count,
			units_sold_last_month, units_sold_this_month, rating, supplier,
			added_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProductID, p.Name, p.Category, p.Price, p.StockCount,
		p.UnitsSoldLastMonth, p.UnitsSoldThisMonth, p.Rating, p.Supplier,
		p.AddedDate, p.CreatedAt, p.UpdatedAt,
	)

	return err
}

// GetByProductID retrieves a product by its business ID
func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*product.Product, error) {
	var p product.Product

	query := `SELECT * FROM products WHERE product_id = $1`

	err := r.db.GetContext(ctx, &p, query, productID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "product not found")
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Exists reports whether a product with the business ID is present
func (r *ProductRepository) Exists(ctx context.Context, productID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Find retrieves products matching the filter
func (r *ProductRepository) Find(ctx context.Context, filter product.Filter, limit int) ([]*product.Product, error) {
	where, args, err := compileFilter(filter, productColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM products WHERE %s ORDER BY product_id LIMIT $%d`,
		where, len(args)+1,
	)
	args = append(args, limit)

	var products []*product.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}

	return products, nil
}

// Update modifies products matching the filter and returns the match count
func (r *ProductRepository) Update(ctx context.Context, filter product.Filter, changes product.Changes) (int64, error) {
	set, setArgs, err := compileChanges(changes, productColumns, 1)
	if err != nil {
		return 0, err
	}

	where, whereArgs, err := compileFilter(filter, productColumns, len(setArgs)+1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s, updated_at = NOW() WHERE %s`,
		set, where,
	)

	result, err := r.db.ExecContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete removes products matching the filter and returns the delete count
func (r *ProductRepository) Delete(ctx context.Context, filter product.Filter) (int64, error) {
	where, args, err := compileFilter(filter, productColumns, 1)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM products WHERE %s`, where), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// NextProductID issues the next sequential business ID
func (r *ProductRepository) NextProductID(ctx context.Context) (string, error) {
	return nextBusinessID(ctx, r.db, "products", "product_id", product.IDPrefix)
}
