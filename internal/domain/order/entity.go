package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order for a single product
type Order struct {
	ID      uuid.UUID `db:"id" json:"-"`
	OrderID string    `db:"order_id" json:"order_id"` // business ID, "O001" style

	ProductID    string          `db:"product_id" json:"product_id"`
	Quantity     int             `db:"quantity" json:"quantity"`
	PricePerUnit decimal.Decimal `db:"price_per_unit" json:"price_per_unit"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`

	CustomerName string    `db:"customer_name" json:"customer_name"`
	OrderDate    time.Time `db:"order_date" json:"order_date"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// IDPrefix is the business ID prefix for orders
const IDPrefix = "O"
