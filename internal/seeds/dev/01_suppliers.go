package dev

import (
	"context"
	"strings"

	"atlas/internal/testsupport/seeds"
)

// SeedSuppliers creates the demo supplier roster (idempotent)
func SeedSuppliers(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	suppliers := []struct {
		id      string
		name    string
		email   string
		phone   string
		address string
		rating  float64
	}{
		{"S001", "TechParts Inc", "sales@techparts.example", "5550101", "200 Industrial Ave, Austin TX", 4.6},
		{"S002", "Global Components", "orders@globalcomp.example", "5550102", "17 Harbour Rd, Rotterdam", 4.2},
		{"S003", "Shenzhen Electronics Co", "export@szelec.example", "5550103", "88 Bao'an Blvd, Shenzhen", 4.8},
		{"S004", "Nordic Supply AB", "kontakt@nordicsupply.example", "5550104", "Vasagatan 12, Stockholm", 3.9},
	}

	for _, sp := range suppliers {
		_, err := s.Supplier().
			WithSupplierID(sp.id).
			WithName(sp.name).
			WithContactEmail(sp.email).
			WithContactNumber(sp.phone).
			WithAddress(sp.address).
			WithRating(sp.rating).
			WithActive(true).
			Insert()

		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Infow("Supplier already exists, skipping", "supplier_id", sp.id)
				continue
			}
			return err
		}

		log.Infow("Created supplier", "supplier_id", sp.id, "name", sp.name)
	}

	return nil
}
