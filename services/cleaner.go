package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"rentai/models"
	"rentai/utils"
)

var (
	// priceRegexp captures the numeric part of a price, with an optional
	// million suffix ("₦8.5M").
	priceRegexp = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(m\b|million)?`)
	// countRegexp captures the first integer in a count field ("4 beds").
	countRegexp = regexp.MustCompile(`\d+`)
	// bathsRegexp allows half bathrooms ("4.5 baths").
	bathsRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Cleaner transforms RawListings read from CSV into validated Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw rows and returns cleaned listings in input order.
// Rows without an ID are dropped, as are repeats of an ID already seen.
func (c *Cleaner) Clean(raw []*models.RawListing) []models.Listing {
	seen := make(map[string]struct{})
	result := make([]models.Listing, 0, len(raw))

	for _, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			c.logger.Warn("[cleaner] Dropping listing with empty id: %s", r.Title)
			continue
		}

		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] Duplicate id skipped: %s", id)
			continue
		}
		seen[id] = struct{}{}

		result = append(result, models.Listing{
			ID:        id,
			Title:     normaliseText(r.Title),
			Location:  normaliseText(r.Location),
			Price:     c.parsePrice(r.RawPrice),
			Images:    splitImages(r.Images),
			Beds:      parseCount(r.Beds),
			Baths:     parseBaths(r.Baths),
			Sqft:      parseCount(r.Sqft),
			Type:      normaliseType(r.Type),
			IsNew:     parseFlag(r.IsNew),
			IsPremium: parseFlag(r.IsPremium),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a whole-naira amount.
// Examples:
//
//	"₦15,000,000"  → 15000000
//	"8.5M"         → 8500000
//	"2500000/year" → 2500000
func (c *Cleaner) parsePrice(raw string) int64 {
	m := priceRegexp.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	if m[2] != "" {
		value *= 1_000_000
		c.logger.Debug("[cleaner] Million suffix in %q → %.0f", raw, value)
	}
	return int64(value + 0.5)
}

func parseCount(raw string) int {
	match := countRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

func parseBaths(raw string) float64 {
	match := bathsRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func splitImages(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// normaliseType trims the category tag but keeps its case: filtering is
// case-sensitive and the stored tag must match what the filter pills send.
func normaliseType(s string) string {
	return strings.TrimSpace(s)
}
