package supplier

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor record
type Supplier struct {
	ID         uuid.UUID `db:"id" json:"-"`
	SupplierID string    `db:"supplier_id" json:"supplier_id"` // business ID, "S001" style

	Name          string  `db:"name" json:"supplier_name"`
	ContactEmail  string  `db:"contact_email" json:"contact_email"`
	ContactNumber string  `db:"contact_number" json:"contact_number"`
	Address       string  `db:"address" json:"address"`
	Rating        float64 `db:"rating" json:"rating"`

	Active bool `db:"active" json:"active"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// IDPrefix is the business ID prefix for suppliers
const IDPrefix = "S"
