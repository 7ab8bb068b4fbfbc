package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentai/models"
)

type listingRow struct {
	Position  int
	ID        string   `gorm:"primaryKey"`
	Title     string   `gorm:"not null"`
	Location  string
	Price     int64    `gorm:"not null;default:0;check:price >= 0"`
	Images    []string `gorm:"serializer:json"`
	Beds      int
	Baths     float64
	Sqft      int
	Type      string `gorm:"index"`
	IsNew     bool
	IsPremium bool
}

func (listingRow) TableName() string { return "listings" }

type neighborhoodRow struct {
	Position    int
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Image       string
	AvgPrice    int64 `gorm:"index"`
	Properties  int
	Rating      float64
	Features    []string `gorm:"serializer:json"`
	Amenities   []string `gorm:"serializer:json"`
	Trending    bool
	Lat         float64
	Lng         float64
	Schools     int
	Safety      int
}

func (neighborhoodRow) TableName() string { return "neighborhoods" }

type propertyTypeRow struct {
	Position    int
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Icon        string
	Count       int
	Image       string
	Features    []string `gorm:"serializer:json"`
	PriceRange  string
	Popular     bool
}

func (propertyTypeRow) TableName() string { return "property_types" }

// SQLiteStore keeps the catalog in a SQLite file through gorm. It is the
// zero-setup persistent backend for local runs and tests.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// migrates the schema. Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&listingRow{}, &neighborhoodRow{}, &propertyTypeRow{}); err != nil {
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, c Catalog) error {
	if err := validate(c); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&listingRow{}, &neighborhoodRow{}, &propertyTypeRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("sqlite: clear: %w", err)
			}
		}

		if len(c.Listings) > 0 {
			rows := make([]listingRow, len(c.Listings))
			for i, l := range c.Listings {
				rows[i] = listingRow{
					Position: i, ID: l.ID, Title: l.Title, Location: l.Location, Price: l.Price,
					Images: l.Images, Beds: l.Beds, Baths: l.Baths, Sqft: l.Sqft, Type: l.Type,
					IsNew: l.IsNew, IsPremium: l.IsPremium,
				}
			}
			if err := tx.CreateInBatches(rows, 50).Error; err != nil {
				return fmt.Errorf("sqlite: insert listings: %w", err)
			}
		}

		if len(c.Neighborhoods) > 0 {
			rows := make([]neighborhoodRow, len(c.Neighborhoods))
			for i, n := range c.Neighborhoods {
				rows[i] = neighborhoodRow{
					Position: i, ID: n.ID, Name: n.Name, Description: n.Description, Image: n.Image,
					AvgPrice: n.Stats.AvgPrice, Properties: n.Stats.Properties, Rating: n.Stats.Rating,
					Features: n.Features, Amenities: n.Amenities, Trending: n.Trending,
					Lat: n.Coordinates.Lat, Lng: n.Coordinates.Lng, Schools: n.Schools, Safety: n.Safety,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("sqlite: insert neighborhoods: %w", err)
			}
		}

		if len(c.PropertyTypes) > 0 {
			rows := make([]propertyTypeRow, len(c.PropertyTypes))
			for i, p := range c.PropertyTypes {
				rows[i] = propertyTypeRow{
					Position: i, ID: p.ID, Name: p.Name, Description: p.Description, Icon: p.Icon.String(),
					Count: p.Count, Image: p.Image, Features: p.Features, PriceRange: p.PriceRange,
					Popular: p.Popular,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("sqlite: insert property types: %w", err)
			}
		}
		return nil
	})
}

func (r listingRow) toModel() models.Listing {
	return models.Listing{
		ID: r.ID, Title: r.Title, Location: r.Location, Price: r.Price, Images: r.Images,
		Beds: r.Beds, Baths: r.Baths, Sqft: r.Sqft, Type: r.Type, IsNew: r.IsNew, IsPremium: r.IsPremium,
	}
}

func (s *SQLiteStore) Listings(ctx context.Context) ([]models.Listing, error) {
	var rows []listingRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: fetch listings: %w", err)
	}
	out := make([]models.Listing, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *SQLiteStore) Listing(ctx context.Context, id string) (models.Listing, error) {
	var row listingRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Listing{}, ErrNotFound
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("sqlite: fetch listing %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (s *SQLiteStore) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	var rows []neighborhoodRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: fetch neighborhoods: %w", err)
	}
	out := make([]models.Neighborhood, len(rows))
	for i, r := range rows {
		out[i] = models.Neighborhood{
			ID: r.ID, Name: r.Name, Description: r.Description, Image: r.Image,
			Stats:    models.NeighborhoodStats{AvgPrice: r.AvgPrice, Properties: r.Properties, Rating: r.Rating},
			Features: r.Features, Trending: r.Trending,
			Coordinates: models.Coordinates{Lat: r.Lat, Lng: r.Lng},
			Amenities:   r.Amenities, Schools: r.Schools, Safety: r.Safety,
		}
	}
	return out, nil
}

func (s *SQLiteStore) PropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	var rows []propertyTypeRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: fetch property types: %w", err)
	}
	out := make([]models.PropertyType, len(rows))
	for i, r := range rows {
		icon, err := models.ParseIcon(r.Icon)
		if err != nil {
			return nil, fmt.Errorf("sqlite: property type %s: %w", r.ID, err)
		}
		out[i] = models.PropertyType{
			ID: r.ID, Name: r.Name, Description: r.Description, Icon: icon, Count: r.Count,
			Image: r.Image, Features: r.Features, PriceRange: r.PriceRange, Popular: r.Popular,
		}
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
