package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atlas/internal/domain/product"
)

// ProductBuilder provides a fluent API for creating Product entities
type ProductBuilder struct {
	db     DBTX
	ctx    context.Context
	entity *product.Product
}

// NewProductBuilder creates a new ProductBuilder with sensible defaults
func NewProductBuilder(db DBTX, ctx context.Context) *ProductBuilder {
	now := time.Now()
	return &ProductBuilder{
		db:  db,
		ctx: ctx,
		entity: &product.Product{
			ID:        uuid.New(),
			ProductID: "P001",
			Name:      "Test Product",
			Category:  "Electronics",
			Price:     decimal.NewFromInt(100),
			Rating:    4.0,
			AddedDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithProductID sets the business ID
func (b *ProductBuilder) WithProductID(id string) *ProductBuilder {
	b.entity.ProductID = id
	return b
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.entity.Name = name
	return b
}

// WithCategory sets the category
func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.entity.Category = category
	return b
}

// WithPrice sets the price
func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.entity.Price = decimal.NewFromFloat(price)
	return b
}

// WithStock sets the stock count
func (b *ProductBuilder) WithStock(count int) *ProductBuilder {
	b.entity.StockCount = count
	return b
}

// WithSales sets units sold last and this month
func (b *ProductBuilder) WithSales(lastMonth, thisMonth int) *ProductBuilder {
	b.entity.UnitsSoldLastMonth = lastMonth
	b.entity.UnitsSoldThisMonth = thisMonth
	return b
}

// WithRating sets the rating
func (b *ProductBuilder) WithRating(rating float64) *ProductBuilder {
	b.entity.Rating = rating
	return b
}

// WithSupplier sets the supplier business ID
func (b *ProductBuilder) WithSupplier(supplierID string) *ProductBuilder {
	b.entity.Supplier = supplierID
	return b
}

// WithAddedDate sets when the product entered the catalog
func (b *ProductBuilder) WithAddedDate(t time.Time) *ProductBuilder {
	b.entity.AddedDate = t
	return b
}

// Build returns the built entity without inserting to DB
func (b *ProductBuilder) Build() *product.Product {
	return b.entity
}

// Insert inserts the product into the database and returns the entity
func (b *ProductBuilder) Insert() (*product.Product, error) {
	query := `
		INSERT INTO products (
			id, product_id, name, category, price, stock_count,
			units_sold_last_month, units_sold_this_month, rating, supplier,
			added_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := b.db.ExecContext(
		b.ctx,
		query,
		b.entity.ID,
		b.entity.ProductID,
		b.entity.Name,
		b.entity.Category,
		b.entity.Price,
		b.entity.StockCount,
		b.entity.UnitsSoldLastMonth,
		b.entity.UnitsSoldThisMonth,
		b.entity.Rating,
		b.entity.Supplier,
		b.entity.AddedDate,
		b.entity.CreatedAt,
		b.entity.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return b.entity, nil
}

// MustInsert inserts the product and panics on error (useful for tests)
func (b *ProductBuilder) MustInsert() *product.Product {
	entity, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return entity
}
