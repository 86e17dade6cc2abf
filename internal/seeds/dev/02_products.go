package dev

import (
	"context"
	"strings"

	"atlas/internal/testsupport/seeds"
)

// SeedProducts creates the demo product catalog (idempotent).
// Requires SeedSuppliers to have run.
func SeedProducts(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	products := []struct {
		id        string
		name      string
		category  string
		price     float64
		stock     int
		lastMonth int
		thisMonth int
		rating    float64
		supplier  string
	}{
		{"P001", "ProBook 15 Laptop", "Electronics", 1499, 42, 31, 18, 4.5, "S001"},
		{"P002", "Wireless Mouse", "Accessories", 29.99, 310, 120, 95, 4.2, "S002"},
		{"P003", "Mechanical Keyboard", "Accessories", 89.99, 150, 64, 71, 4.7, "S002"},
		{"P004", "27-inch 4K Monitor", "Electronics", 399, 58, 22, 30, 4.4, "S001"},
		{"P005", "USB-C Docking Station", "Accessories", 129, 95, 40, 33, 4.0, "S003"},
		{"P006", "Noise Cancelling Headphones", "Audio", 249, 77, 55, 48, 4.6, "S003"},
		{"P007", "Desk Lamp", "Office", 34.5, 200, 15, 12, 3.8, "S004"},
		{"P008", "Ergonomic Office Chair", "Office", 329, 25, 9, 14, 4.3, "S004"},
	}

	for _, p := range products {
		_, err := s.Product().
			WithProductID(p.id).
			WithName(p.name).
			WithCategory(p.category).
			WithPrice(p.price).
			WithStock(p.stock).
			WithSales(p.lastMonth, p.thisMonth).
			WithRating(p.rating).
			WithSupplier(p.supplier).
			Insert()

		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Infow("Product already exists, skipping", "product_id", p.id)
				continue
			}
			return err
		}

		log.Infow("Created product", "product_id", p.id, "name", p.name)
	}

	return nil
}
