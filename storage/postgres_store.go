package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"rentai/models"
	"rentai/utils"
)

// PostgresStore keeps the catalog in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// connections, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			position    INTEGER      NOT NULL,
			id          TEXT         PRIMARY KEY,
			title       TEXT         NOT NULL,
			location    TEXT         NOT NULL DEFAULT '',
			price       BIGINT       NOT NULL DEFAULT 0 CHECK (price >= 0),
			images      TEXT[]       NOT NULL DEFAULT '{}',
			beds        INTEGER      NOT NULL DEFAULT 0,
			baths       NUMERIC(4,1) NOT NULL DEFAULT 0,
			sqft        INTEGER      NOT NULL DEFAULT 0,
			type        VARCHAR(50)  NOT NULL DEFAULT '',
			is_new      BOOLEAN      NOT NULL DEFAULT FALSE,
			is_premium  BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS neighborhoods (
			position     INTEGER          NOT NULL,
			id           TEXT             PRIMARY KEY,
			name         TEXT             NOT NULL,
			description  TEXT             NOT NULL DEFAULT '',
			image        TEXT             NOT NULL DEFAULT '',
			avg_price    BIGINT           NOT NULL DEFAULT 0,
			properties   INTEGER          NOT NULL DEFAULT 0,
			rating       NUMERIC(3,1)     NOT NULL DEFAULT 0,
			features     TEXT[]           NOT NULL DEFAULT '{}',
			amenities    TEXT[]           NOT NULL DEFAULT '{}',
			trending     BOOLEAN          NOT NULL DEFAULT FALSE,
			lat          DOUBLE PRECISION NOT NULL DEFAULT 0,
			lng          DOUBLE PRECISION NOT NULL DEFAULT 0,
			schools      INTEGER          NOT NULL DEFAULT 0,
			safety       INTEGER          NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS property_types (
			position     INTEGER  NOT NULL,
			id           TEXT     PRIMARY KEY,
			name         TEXT     NOT NULL,
			description  TEXT     NOT NULL DEFAULT '',
			icon         TEXT     NOT NULL,
			count        INTEGER  NOT NULL DEFAULT 0,
			image        TEXT     NOT NULL DEFAULT '',
			features     TEXT[]   NOT NULL DEFAULT '{}',
			price_range  TEXT     NOT NULL DEFAULT '',
			popular      BOOLEAN  NOT NULL DEFAULT FALSE
		);

		CREATE INDEX IF NOT EXISTS idx_listings_type      ON listings(type);
		CREATE INDEX IF NOT EXISTS idx_listings_price     ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_neighborhoods_avg  ON neighborhoods(avg_price);
	`)
	return err
}

// ReplaceCatalog clears all three tables and batch-inserts c in one
// transaction. Catalog order is kept in the position column.
func (ps *PostgresStore) ReplaceCatalog(ctx context.Context, c Catalog) error {
	if err := validate(c); err != nil {
		return err
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings; DELETE FROM neighborhoods; DELETE FROM property_types"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(c.Listings); i += batchSize {
		end := min(i+batchSize, len(c.Listings))
		if err := insertListings(ctx, tx, i, c.Listings[i:end]); err != nil {
			return err
		}
	}
	for i, n := range c.Neighborhoods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO neighborhoods (position, id, name, description, image, avg_price, properties, rating,
				features, amenities, trending, lat, lng, schools, safety)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			i, n.ID, n.Name, n.Description, n.Image, n.Stats.AvgPrice, n.Stats.Properties, n.Stats.Rating,
			pq.Array(n.Features), pq.Array(n.Amenities), n.Trending, n.Coordinates.Lat, n.Coordinates.Lng,
			n.Schools, n.Safety)
		if err != nil {
			return fmt.Errorf("postgres: insert neighborhood %s: %w", n.ID, err)
		}
	}
	for i, p := range c.PropertyTypes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO property_types (position, id, name, description, icon, count, image, features, price_range, popular)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			i, p.ID, p.Name, p.Description, p.Icon.String(), p.Count, p.Image, pq.Array(p.Features), p.PriceRange, p.Popular)
		if err != nil {
			return fmt.Errorf("postgres: insert property type %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertListings(ctx context.Context, tx *sql.Tx, offset int, batch []models.Listing) error {
	const cols = 12
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			offset+idx, l.ID, l.Title, l.Location, l.Price, pq.Array(l.Images),
			l.Beds, l.Baths, l.Sqft, l.Type, l.IsNew, l.IsPremium)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (position, id, title, location, price, images, beds, baths, sqft, type, is_new, is_premium)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert listings: %w", err)
	}
	return nil
}

const listingColumns = `id, title, location, price, images, beds, baths, sqft, type, is_new, is_premium`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (models.Listing, error) {
	var l models.Listing
	err := row.Scan(&l.ID, &l.Title, &l.Location, &l.Price, pq.Array(&l.Images),
		&l.Beds, &l.Baths, &l.Sqft, &l.Type, &l.IsNew, &l.IsPremium)
	return l, err
}

func (ps *PostgresStore) Listings(ctx context.Context) ([]models.Listing, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (ps *PostgresStore) Listing(ctx context.Context, id string) (models.Listing, error) {
	row := ps.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, ErrNotFound
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("postgres: fetch listing %s: %w", id, err)
	}
	return l, nil
}

func (ps *PostgresStore) Neighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, name, description, image, avg_price, properties, rating, features, amenities,
			trending, lat, lng, schools, safety
		FROM neighborhoods
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch neighborhoods: %w", err)
	}
	defer rows.Close()

	var out []models.Neighborhood
	for rows.Next() {
		var n models.Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.Description, &n.Image, &n.Stats.AvgPrice,
			&n.Stats.Properties, &n.Stats.Rating, pq.Array(&n.Features), pq.Array(&n.Amenities),
			&n.Trending, &n.Coordinates.Lat, &n.Coordinates.Lng, &n.Schools, &n.Safety); err != nil {
			return nil, fmt.Errorf("postgres: scan neighborhood: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (ps *PostgresStore) PropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, name, description, icon, count, image, features, price_range, popular
		FROM property_types
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch property types: %w", err)
	}
	defer rows.Close()

	var out []models.PropertyType
	for rows.Next() {
		var p models.PropertyType
		var icon string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &icon, &p.Count, &p.Image,
			pq.Array(&p.Features), &p.PriceRange, &p.Popular); err != nil {
			return nil, fmt.Errorf("postgres: scan property type: %w", err)
		}
		if p.Icon, err = models.ParseIcon(icon); err != nil {
			return nil, fmt.Errorf("postgres: property type %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// connectTimeout bounds the whole connect-and-migrate sequence.
const connectTimeout = 60 * time.Second

// OpenPostgres is NewPostgresStore with a bounded context.
func OpenPostgres(dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return NewPostgresStore(ctx, dsn, retry)
}
