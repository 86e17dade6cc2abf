package test

import (
	"context"
	"strings"

	"atlas/internal/testsupport/seeds"
)

// SeedFixtures creates the minimal dataset integration tests rely on:
// one supplier, one product and one order with known IDs (idempotent)
func SeedFixtures(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	_, err := s.Supplier().
		WithSupplierID("S001").
		WithName("Fixture Supplier").
		Insert()
	if err != nil {
		if !strings.Contains(err.Error(), "duplicate key") {
			return err
		}
		log.Info("Fixtures already present, skipping")
		return nil
	}

	if _, err := s.Product().
		WithProductID("P001").
		WithName("Fixture Product").
		WithSupplier("S001").
		WithPrice(100).
		WithStock(10).
		Insert(); err != nil {
		return err
	}

	if _, err := s.Order().
		WithOrderID("O001").
		WithProductID("P001").
		WithPricePerUnit(100).
		WithQuantity(1).
		WithCustomerName("Fixture Customer").
		Insert(); err != nil {
		return err
	}

	log.Info("Test fixtures created")
	return nil
}
