package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atlas/internal/domain/order"
)

// OrderBuilder provides a fluent API for creating Order entities
type OrderBuilder struct {
	db     DBTX
	ctx    context.Context
	entity *order.Order
}

// NewOrderBuilder creates a new OrderBuilder with sensible defaults
func NewOrderBuilder(db DBTX, ctx context.Context) *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		db:  db,
		ctx: ctx,
		entity: &order.Order{
			ID:           uuid.New(),
			OrderID:      "O001",
			ProductID:    "P001",
			Quantity:     1,
			PricePerUnit: decimal.NewFromInt(100),
			TotalPrice:   decimal.NewFromInt(100),
			CustomerName: "Test Customer",
			OrderDate:    now,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// WithOrderID sets the business ID
func (b *OrderBuilder) WithOrderID(id string) *OrderBuilder {
	b.entity.OrderID = id
	return b
}

// WithProductID sets the referenced product
func (b *OrderBuilder) WithProductID(productID string) *OrderBuilder {
	b.entity.ProductID = productID
	return b
}

// WithQuantity sets the quantity and recomputes the total
func (b *OrderBuilder) WithQuantity(qty int) *OrderBuilder {
	b.entity.Quantity = qty
	b.entity.TotalPrice = b.entity.PricePerUnit.Mul(decimal.NewFromInt(int64(qty)))
	return b
}

// WithPricePerUnit sets the unit price and recomputes the total
func (b *OrderBuilder) WithPricePerUnit(price float64) *OrderBuilder {
	b.entity.PricePerUnit = decimal.NewFromFloat(price)
	b.entity.TotalPrice = b.entity.PricePerUnit.Mul(decimal.NewFromInt(int64(b.entity.Quantity)))
	return b
}

// WithCustomerName sets the customer name
func (b *OrderBuilder) WithCustomerName(name string) *OrderBuilder {
	b.entity.CustomerName = name
	return b
}

// WithOrderDate sets the order date
func (b *OrderBuilder) WithOrderDate(t time.Time) *OrderBuilder {
	b.entity.OrderDate = t
	return b
}

// Build returns the built entity without inserting to DB
func (b *OrderBuilder) Build() *order.Order {
	return b.entity
}

// Insert inserts the order into the database and returns the entity
func (b *OrderBuilder) Insert() (*order.Order, error) {
	query := `
		INSERT INTO orders (
			id, order_id, product_id, quantity, price_per_unit,
			total_price, customer_name, order_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := b.db.ExecContext(
		b.ctx,
		query,
		b.entity.ID,
		b.entity.OrderID,
		b.entity.ProductID,
		b.entity.Quantity,
		b.entity.PricePerUnit,
		b.entity.TotalPrice,
		b.entity.CustomerName,
		b.entity.OrderDate,
		b.entity.CreatedAt,
		b.entity.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return b.entity, nil
}

// MustInsert inserts the order and panics on error (useful for tests)
func (b *OrderBuilder) MustInsert() *order.Order {
	entity, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return entity
}
