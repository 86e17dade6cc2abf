package supplier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

const maxQueryResults = 100

// CreateInput carries caller-supplied fields for a new supplier.
type CreateInput struct {
	Name          string
	ContactEmail  string
	ContactNumber string
	Address       string
	Rating        float64
}

// Service provides vendor directory operations
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a supplier service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get().With("component", "supplier_service")}
}

// Create validates input, assigns the business ID and stores the supplier
func (s *Service) Create(ctx context.Context, in CreateInput) (*Supplier, error) {
	if in.Name == "" {
		return nil, errors.NewValidationError("supplier_name", "is required", in.Name)
	}
	if in.ContactEmail == "" || !strings.Contains(in.ContactEmail, "@") {
		return nil, errors.NewValidationError("contact_email", "must be a valid email", in.ContactEmail)
	}
	if in.ContactNumber == "" {
		return nil, errors.NewValidationError("contact_number", "is required", in.ContactNumber)
	}
	if in.Address == "" {
		return nil, errors.NewValidationError("address", "is required", in.Address)
	}

	supplierID, err := s.repo.NextSupplierID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "assign supplier id")
	}

	now := time.Now()
	sup := &Supplier{
		ID:            uuid.New(),
		SupplierID:    supplierID,
		Name:          in.Name,
		ContactEmail:  in.ContactEmail,
		ContactNumber: in.ContactNumber,
		Address:       in.Address,
		Rating:        in.Rating,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, errors.Wrap(err, "create supplier")
	}

	s.log.Infof("Supplier created: %s (%s)", sup.SupplierID, sup.Name)
	return sup, nil
}

// Find returns suppliers matching the filter
func (s *Service) Find(ctx context.Context, filter Filter, limit int) ([]*Supplier, error) {
	if limit <= 0 || limit > maxQueryResults {
		limit = maxQueryResults
	}
	results, err := s.repo.Find(ctx, filter, limit)
	if err != nil {
		return nil, errors.Wrap(err, "find suppliers")
	}
	return results, nil
}

// Update modifies matching suppliers, ErrNotFound when nothing matched
func (s *Service) Update(ctx context.Context, filter Filter, changes Changes) (int64, error) {
	if len(changes) == 0 {
		return 0, errors.Wrap(errors.ErrInvalidInput, "no fields to update")
	}
	matched, err := s.repo.Update(ctx, filter, changes)
	if err != nil {
		return 0, errors.Wrap(err, "update suppliers")
	}
	if matched == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no suppliers matched the filter")
	}
	return matched, nil
}

// Delete removes matching suppliers, ErrNotFound when nothing matched
func (s *Service) Delete(ctx context.Context, filter Filter) (int64, error) {
	deleted, err := s.repo.Delete(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "delete suppliers")
	}
	if deleted == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "no suppliers matched the filter")
	}
	s.log.Infof("Deleted %d supplier(s)", deleted)
	return deleted, nil
}
