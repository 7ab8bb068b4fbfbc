package storage

import (
	"context"
	"sync"

	"rentai/catalog"
	"rentai/models"
)

// MemoryStore keeps the catalog in process memory. It starts from the
// literal seed and loses any replacement on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	cat Catalog
}

// NewMemoryStore creates a store holding the seed catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cat: SeedCatalog()}
}

// SeedCatalog returns a fresh copy of the literal catalog.
func SeedCatalog() Catalog {
	return Catalog{
		Listings:      catalog.Listings(),
		Neighborhoods: catalog.Neighborhoods(),
		PropertyTypes: catalog.PropertyTypes(),
	}
}

func (m *MemoryStore) Listings(ctx context.Context) ([]models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Listing, len(m.cat.Listings))
	for i, l := range m.cat.Listings {
		l.Images = append([]string(nil), l.Images...)
		out[i] = l
	}
	return out, nil
}

func (m *MemoryStore) Listing(ctx context.Context, id string) (models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.cat.Listings {
		if l.ID == id {
			l.Images = append([]string(nil), l.Images...)
			return l, nil
		}
	}
	return models.Listing{}, ErrNotFound
}

func (m *MemoryStore) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Neighborhood, len(m.cat.Neighborhoods))
	for i, n := range m.cat.Neighborhoods {
		n.Features = append([]string(nil), n.Features...)
		n.Amenities = append([]string(nil), n.Amenities...)
		out[i] = n
	}
	return out, nil
}

func (m *MemoryStore) PropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.PropertyType, len(m.cat.PropertyTypes))
	for i, p := range m.cat.PropertyTypes {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out, nil
}

func (m *MemoryStore) ReplaceCatalog(ctx context.Context, c Catalog) error {
	if err := validate(c); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cat = c
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func validate(c Catalog) error {
	if err := catalog.ValidateListings(c.Listings); err != nil {
		return err
	}
	if err := catalog.ValidateNeighborhoods(c.Neighborhoods); err != nil {
		return err
	}
	return catalog.ValidatePropertyTypes(c.PropertyTypes)
}
