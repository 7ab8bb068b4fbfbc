package catalog

import (
	"errors"
	"fmt"

	"rentai/models"
)

// ValidateListings checks the catalog invariants: unique IDs and
// non-negative prices. All problems are reported together.
func ValidateListings(listings []models.Listing) error {
	var errs []error
	seen := make(map[string]struct{}, len(listings))
	for _, l := range listings {
		if l.ID == "" {
			errs = append(errs, fmt.Errorf("listing %q: empty id", l.Title))
			continue
		}
		if _, dup := seen[l.ID]; dup {
			errs = append(errs, fmt.Errorf("listing %s: duplicate id", l.ID))
		}
		seen[l.ID] = struct{}{}
		if l.Price < 0 {
			errs = append(errs, fmt.Errorf("listing %s: negative price %d", l.ID, l.Price))
		}
	}
	return errors.Join(errs...)
}

// ValidateNeighborhoods checks ID uniqueness and non-negative average prices.
func ValidateNeighborhoods(neighborhoods []models.Neighborhood) error {
	var errs []error
	seen := make(map[string]struct{}, len(neighborhoods))
	for _, n := range neighborhoods {
		if _, dup := seen[n.ID]; dup {
			errs = append(errs, fmt.Errorf("neighborhood %s: duplicate id", n.ID))
		}
		seen[n.ID] = struct{}{}
		if n.Stats.AvgPrice < 0 {
			errs = append(errs, fmt.Errorf("neighborhood %s: negative average price", n.ID))
		}
	}
	return errors.Join(errs...)
}

// ValidatePropertyTypes checks ID uniqueness.
func ValidatePropertyTypes(types []models.PropertyType) error {
	var errs []error
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if _, dup := seen[t.ID]; dup {
			errs = append(errs, fmt.Errorf("property type %s: duplicate id", t.ID))
		}
		seen[t.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
