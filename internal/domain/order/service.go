package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

const maxQueryResults = 100

// CreateInput carries caller-supplied fields for a new order.
// OrderID and OrderDate are assigned by the service; TotalPrice is
// computed as quantity times unit price when not supplied.
type CreateInput struct {
	ProductID    string
	Quantity     int
	PricePerUnit decimal.Decimal
	CustomerName string
	TotalPrice   decimal.Decimal // optional override
}

// ProductLookup resolves whether a referenced product exists.
// Satisfied by product.Repository.
type ProductLookup interface {
	Exists(ctx context.Context, productID string) (bool, error)
}

// Service provides order management operations
type Service struct {
	repo     Repository
	products ProductLookup
	log      *logger.Logger
}

// NewService constructs an order service. products may be nil, in which
// case referenced product IDs are not verified.
func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products, log: logger.Get().With("component", "order_service")}
}

// Create validates input, computes the total and stores the order
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if in.ProductID == "" {
		return nil, errors.NewValidationError("product_id", "is required", in.ProductID)
	}
	if in.Quantity <= 0 {
		return nil, errors.NewValidationError("quantity", "must be positive", in.Quantity)
	}
	if in.PricePerUnit.IsNegative() || in.PricePerUnit.IsZero() {
		return nil, errors.NewValidationError("price_per_unit", "must be positive", in.PricePerUnit)
	}
	if in.CustomerName == "" {
		return nil, errors.NewValidationError("customer_name", "is required", in.CustomerName)
	}

	if s.products != nil {
		ok, err := s.products.Exists(ctx, in.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "verify product")
		}
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "product %s does not exist", in.ProductID)
		}
	}

	total := in.TotalPrice
	if total.IsZero() {
		total = in.PricePerUnit.Mul(decimal.NewFromInt(int64(in.Quantity)))
	}

	orderID, err := s.repo.NextOrderID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "assign order id")
	}

	now := time.Now()
	o := &Order{
		ID:           uuid.New(),
		OrderID:      orderID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalPrice:   total,
		CustomerName: in.CustomerName,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.log.Infof("Order created: %s (%s x%d for %s)", o.OrderID, o.ProductID, o.Quantity, o.CustomerName)
	return o, nil
}

// Find returns orders matching the filter
func (s *Service) Find(ctx context.Context, filter Filter, limit int) ([]*Order, error) {
	if limit <= 0 || limit > maxQueryResults {
		limit = maxQueryResults
	}
	results, err := s.repo.Find(ctx, filter, limit)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	return results, nil
}

// Update modifies matching orders, ErrNotFound when nothing matched
func (s *Service) Update(ctx context.Context, filter Filter, changes Changes) (int64, error) {
	if len(changes) == 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "no fields to update")
	}
	matched, err := s.repo.Update(ctx, filter, changes)
	if err != nil {
		return 0, errors.Wrap(err, "update orders")
	}
	if matched == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no orders matched the filter")
	}
	return matched, nil
}

// Delete removes matching orders, ErrNotFound when nothing matched
func (s *Service) Delete(ctx context.Context, filter Filter) (int64, error) {
	deleted, err := s.repo.Delete(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "delete orders")
	}
	if deleted == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no orders matched the filter")
	}
	s.log.Infof("Deleted %d order(s)", deleted)
	return deleted, nil
}
