package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"rentai/models"
)

// csvHeader is the column layout shared by export and import.
var csvHeader = []string{
	"id", "title", "location", "price", "images", "beds", "baths", "sqft", "type", "is_new", "is_premium",
}

// CSVWriter writes listings to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per listing. Images are joined with "|".
func (c *CSVWriter) Write(listings []models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		row := []string{
			l.ID,
			l.Title,
			l.Location,
			strconv.FormatInt(l.Price, 10),
			strings.Join(l.Images, "|"),
			strconv.Itoa(l.Beds),
			strconv.FormatFloat(l.Baths, 'f', -1, 64),
			strconv.Itoa(l.Sqft),
			l.Type,
			strconv.FormatBool(l.IsNew),
			strconv.FormatBool(l.IsPremium),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// ReadRawListings parses CSV rows into RawListings without interpreting the
// values. Columns are matched by header name, so extra or reordered columns
// are fine; a missing id column is an error.
func ReadRawListings(r io.Reader) ([]*models.RawListing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, fmt.Errorf("csv: header has no id column")
	}

	var out []*models.RawListing
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}
		out = append(out, &models.RawListing{
			ID:        field("id"),
			Title:     field("title"),
			Location:  field("location"),
			RawPrice:  field("price"),
			Images:    field("images"),
			Beds:      field("beds"),
			Baths:     field("baths"),
			Sqft:      field("sqft"),
			Type:      field("type"),
			IsNew:     field("is_new"),
			IsPremium: field("is_premium"),
		})
	}
	return out, nil
}

// ReadRawListingsFile opens path and parses it with ReadRawListings.
func ReadRawListingsFile(path string) ([]*models.RawListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadRawListings(f)
}
