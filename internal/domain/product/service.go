package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// maxQueryResults caps how many rows a single lookup may return
const maxQueryResults = 100

// CreateInput carries caller-supplied fields for a new product.
// ProductID and AddedDate are assigned by the service.
type CreateInput struct {
	Name       string
	Price      decimal.Decimal
	StockCount int
	Category   string
	Supplier   string
	Rating     float64
}

// Service provides product catalog operations
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a product service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get().With("component", "product_service")}
}

// Create validates input, assigns the business ID and stores the product
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if in.Name == "" {
		return nil, errors.NewValidationError("product_name", "is required", in.Name)
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, errors.NewValidationError("price", "must be positive", in.Price)
	}
	if in.StockCount < 0 {
		return nil, errors.NewValidationError("stock_count", "must not be negative", in.StockCount)
	}

	productID, err := s.repo.NextProductID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "assign product id")
	}

	now := time.Now()
	p := &Product{
		ID:         uuid.New(),
		ProductID:  productID,
		Name:       in.Name,
		Category:   in.Category,
		Price:      in.Price,
		StockCount: in.StockCount,
		Rating:     in.Rating,
		Supplier:   in.Supplier,
		AddedDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	s.log.Infof("Product created: %s (%s)", p.ProductID, p.Name)
	return p, nil
}

// Find returns products matching the filter, capped at maxQueryResults
func (s *Service) Find(ctx context.Context, filter Filter, limit int) ([]*Product, error) {
	if limit <= 0 || limit > maxQueryResults {
		limit = maxQueryResults
	}
	results, err := s.repo.Find(ctx, filter, limit)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	return results, nil
}

// Update modifies matching products. Zero matches is reported as ErrNotFound
// so callers can distinguish "nothing matched" from a successful update.
func (s *Service) Update(ctx context.Context, filter Filter, changes Changes) (int64, error) {
	if len(changes) == 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "no fields to update")
	}
	matched, err := s.repo.Update(ctx, filter, changes)
	if err != nil {
		return 0, errors.Wrap(err, "update products")
	}
	if matched == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no products matched the filter")
	}
	return matched, nil
}

// Delete removes matching products. Zero matches is reported as ErrNotFound.
func (s *Service) Delete(ctx context.Context, filter Filter) (int64, error) {
	deleted, err := s.repo.Delete(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "delete products")
	}
	if deleted == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no products matched the filter")
	}
	s.log.Infof("Deleted %d product(s)", deleted)
	return deleted, nil
}
