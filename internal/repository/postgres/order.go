package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"atlas/internal/domain/order"
	"atlas/pkg/errors"
)

// Compile-time check that we implement the interface
var _ order.Repository = (*OrderRepository)(nil)

var orderColumns = map[string]string{
	"order_id":       "order_id",
	"product_id":     "product_id",
	"quantity":       "quantity",
	"price_per_unit": "price_per_unit",
	"total_price":    "total_price",
	"customer_name":  "customer_name",
	"order_date":     "order_date",
}

// OrderRepository implements order.Repository using sqlx
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			id, order_id, product_id, quantity, price_per_unit,
			total_price, customer_name, order_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.OrderID, o.ProductID, o.Quantity, o.PricePerUnit,
		o.TotalPrice, o.CustomerName, o.OrderDate, o.CreatedAt, o.UpdatedAt,
	)

	return err
}

// GetByOrderID retrieves an order by its business ID
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	var o order.Order

	err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE order_id = $1`, orderID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// Find retrieves orders matching the filter
func (r *OrderRepository) Find(ctx context.Context, filter order.Filter, limit int) ([]*order.Order, error) {
	where, args, err := compileFilter(filter, orderColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM orders WHERE %s ORDER BY order_id LIMIT $%d`,
		where, len(args)+1,
	)
	args = append(args, limit)

	var orders []*order.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}

	return orders, nil
}

// Update modifies orders matching the filter and returns the match count
func (r *OrderRepository) Update(ctx context.Context, filter order.Filter, changes order.Changes) (int64, error) {
	set, setArgs, err := compileChanges(changes, orderColumns, 1)
	if err != nil {
		return 0, err
	}

	where, whereArgs, err := compileFilter(filter, orderColumns, len(setArgs)+1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		`UPDATE orders SET %s, updated_at = NOW() WHERE %s`,
		set, where,
	)

	result, err := r.db.ExecContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete removes orders matching the filter and returns the delete count
func (r *OrderRepository) Delete(ctx context.Context, filter order.Filter) (int64, error) {
	where, args, err := compileFilter(filter, orderColumns, 1)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM orders WHERE %s`, where), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// NextOrderID issues the next sequential business ID
func (r *OrderRepository) NextOrderID(ctx context.Context) (string, error) {
	return nextBusinessID(ctx, r.db, "orders", "order_id", order.IDPrefix)
}
