package storage

import (
	"context"
	"errors"

	"rentai/models"
)

// ErrNotFound is returned when a record lookup by ID has no match.
var ErrNotFound = errors.New("storage: not found")

// Catalog bundles every collection the site renders.
type Catalog struct {
	Listings      []models.Listing
	Neighborhoods []models.Neighborhood
	PropertyTypes []models.PropertyType
}

// CatalogReader is what the web layer needs from a backend.
type CatalogReader interface {
	Listings(ctx context.Context) ([]models.Listing, error)
	Listing(ctx context.Context, id string) (models.Listing, error)
	Neighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	PropertyTypes(ctx context.Context) ([]models.PropertyType, error)
}

// CatalogStore is the interface any catalog backend must satisfy.
// ReplaceCatalog swaps the whole content atomically where the backend allows.
type CatalogStore interface {
	CatalogReader
	ReplaceCatalog(ctx context.Context, c Catalog) error
	Close() error
}

// ListingWriter is the interface for exporting listings to a flat file.
type ListingWriter interface {
	Write(listings []models.Listing) error
	Close() error
}
