package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product record
type Product struct {
	ID        uuid.UUID `db:"id" json:"-"`
	ProductID string    `db:"product_id" json:"product_id"` // business ID, "P001" style

	Name     string          `db:"name" json:"product_name"`
	Category string          `db:"category" json:"category"`
	Price    decimal.Decimal `db:"price" json:"price"`

	StockCount         int     `db:"stock_count" json:"stock_count"`
	UnitsSoldLastMonth int     `db:"units_sold_last_month" json:"units_sold_last_month"`
	UnitsSoldThisMonth int     `db:"units_sold_this_month" json:"units_sold_this_month"`
	Rating             float64 `db:"rating" json:"rating"`

	// Supplier is the supplier's display name, optional
	Supplier string `db:"supplier" json:"supplier,omitempty"`

	AddedDate time.Time `db:"added_date" json:"added_date"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// IDPrefix is the business ID prefix for products
const IDPrefix = "P"
