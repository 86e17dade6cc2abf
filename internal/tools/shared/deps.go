package shared

import (
	"context"
	"time"

	"atlas/internal/adapters/mailer"
	"atlas/internal/domain/memory"
	"atlas/internal/domain/order"
	"atlas/internal/domain/product"
	"atlas/internal/domain/supplier"
	"atlas/pkg/logger"
	"atlas/pkg/templates"
)

// CacheClient interface to avoid a hard dependency on the redis adapter
type CacheClient interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Deps bundles dependencies required by concrete tool implementations
type Deps struct {
	Products  *product.Service
	Suppliers *supplier.Service
	Orders    *order.Service
	Memory    *memory.Service

	Mailer    mailer.Sender
	Cache     CacheClient
	Templates *templates.Registry
	Log       *logger.Logger

	// QueryCacheTTL controls how long db_access read results stay cached.
	// Zero disables caching.
	QueryCacheTTL time.Duration
}

// HasRecordServices reports whether the record services are wired
func (d Deps) HasRecordServices() bool {
	return d.Products != nil && d.Suppliers != nil && d.Orders != nil
}

// HasMemory reports whether the memory service is available
func (d Deps) HasMemory() bool {
	return d.Memory != nil
}

// HasMailer reports whether an outbound mailer is wired
func (d Deps) HasMailer() bool {
	return d.Mailer != nil
}

// HasCache reports whether a query cache is wired
func (d Deps) HasCache() bool {
	return d.Cache != nil && d.QueryCacheTTL > 0
}
