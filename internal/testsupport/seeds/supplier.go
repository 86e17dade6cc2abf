package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atlas/internal/domain/supplier"
)

// SupplierBuilder provides a fluent API for creating Supplier entities
type SupplierBuilder struct {
	db     DBTX
	ctx    context.Context
	entity *supplier.Supplier
}

// NewSupplierBuilder creates a new SupplierBuilder with sensible defaults
func NewSupplierBuilder(db DBTX, ctx context.Context) *SupplierBuilder {
	now := time.Now()
	return &SupplierBuilder{
		db:  db,
		ctx: ctx,
		entity: &supplier.Supplier{
			ID:            uuid.New(),
			SupplierID:    "S001",
			Name:          "Test Supplier",
			ContactEmail:  "contact@supplier.test",
			ContactNumber: "5550100",
			Address:       "1 Warehouse Way",
			Rating:        4.0,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// WithSupplierID sets the business ID
func (b *SupplierBuilder) WithSupplierID(id string) *SupplierBuilder {
	b.entity.SupplierID = id
	return b
}

// WithName sets the supplier name
func (b *SupplierBuilder) WithName(name string) *SupplierBuilder {
	b.entity.Name = name
	return b
}

// WithContactEmail sets the contact email
func (b *SupplierBuilder) WithContactEmail(email string) *SupplierBuilder {
	b.entity.ContactEmail = email
	return b
}

// WithContactNumber sets the contact number
func (b *SupplierBuilder) WithContactNumber(number string) *SupplierBuilder {
	b.entity.ContactNumber = number
	return b
}

// WithAddress sets the address
func (b *SupplierBuilder) WithAddress(address string) *SupplierBuilder {
	b.entity.Address = address
	return b
}

// WithRating sets the rating
func (b *SupplierBuilder) WithRating(rating float64) *SupplierBuilder {
	b.entity.Rating = rating
	return b
}

// WithActive sets the active flag
func (b *SupplierBuilder) WithActive(active bool) *SupplierBuilder {
	b.entity.Active = active
	return b
}

// Build returns the built entity without inserting to DB
func (b *SupplierBuilder) Build() *supplier.Supplier {
	return b.entity
}

// Insert inserts the supplier into the database and returns the entity
func (b *SupplierBuilder) Insert() (*supplier.Supplier, error) {
	query := `
		INSERT INTO suppliers (
			id, supplier_id, name, contact_email, contact_number,
			address, rating, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := b.db.ExecContext(
		b.ctx,
		query,
		b.entity.ID,
		b.entity.SupplierID,
		b.entity.Name,
		b.entity.ContactEmail,
		b.entity.ContactNumber,
		b.entity.Address,
		b.entity.Rating,
		b.entity.Active,
		b.entity.CreatedAt,
		b.entity.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}

	return b.entity, nil
}

// MustInsert inserts the supplier and panics on error (useful for tests)
func (b *SupplierBuilder) MustInsert() *supplier.Supplier {
	entity, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return entity
}
