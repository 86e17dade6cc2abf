package seeds

import (
	"context"
	"database/sql"

	"atlas/pkg/logger"
)

// DBTX is the interface that both *sql.DB and *sql.Tx satisfy
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Seeder is the central orchestrator for creating seed data
// It provides a fluent API to build catalog scenarios
type Seeder struct {
	db  DBTX
	ctx context.Context
	log *logger.Logger
}

// New creates a new Seeder instance
func New(db DBTX) *Seeder {
	return &Seeder{
		db:  db,
		ctx: context.Background(),
		log: logger.Get().With("component", "seeds"),
	}
}

// WithContext sets the context for database operations
func (s *Seeder) WithContext(ctx context.Context) *Seeder {
	s.ctx = ctx
	return s
}

// Log returns the logger instance
func (s *Seeder) Log() *logger.Logger {
	return s.log
}

// Product starts building a Product entity
func (s *Seeder) Product() *ProductBuilder {
	return NewProductBuilder(s.db, s.ctx)
}

// Supplier starts building a Supplier entity
func (s *Seeder) Supplier() *SupplierBuilder {
	return NewSupplierBuilder(s.db, s.ctx)
}

// Order starts building an Order entity
func (s *Seeder) Order() *OrderBuilder {
	return NewOrderBuilder(s.db, s.ctx)
}

// Memory starts building a Memory entity
func (s *Seeder) Memory() *MemoryBuilder {
	return NewMemoryBuilder(s.db, s.ctx)
}
