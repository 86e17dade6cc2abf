package dev

import (
	"context"
	"strings"
	"time"

	"atlas/internal/testsupport/seeds"
)

// SeedOrders creates demo orders against the seeded catalog (idempotent).
// Requires SeedProducts to have run.
func SeedOrders(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	now := time.Now()
	orders := []struct {
		id       string
		product  string
		quantity int
		price    float64
		customer string
		daysAgo  int
	}{
		{"O001", "P001", 2, 1499, "Alice Johnson", 14},
		{"O002", "P002", 10, 29.99, "Acme Corp", 10},
		{"O003", "P006", 1, 249, "Bob Martinez", 7},
		{"O004", "P004", 3, 399, "Initech Ltd", 5},
		{"O005", "P003", 5, 89.99, "Carol Chen", 2},
	}

	for _, o := range orders {
		_, err := s.Order().
			WithOrderID(o.id).
			WithProductID(o.product).
			WithPricePerUnit(o.price).
			WithQuantity(o.quantity).
			WithCustomerName(o.customer).
			WithOrderDate(now.AddDate(0, 0, -o.daysAgo)).
			Insert()

		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Infow("Order already exists, skipping", "order_id", o.id)
				continue
			}
			return err
		}

		log.Infow("Created order", "order_id", o.id, "customer", o.customer)
	}

	return nil
}
