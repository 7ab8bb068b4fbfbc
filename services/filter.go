package services

import "rentai/models"

// Listing filter selectors with special meaning. Every other selector is
// compared against Listing.Type.
const (
	FilterAll     = "all"
	FilterPremium = "premium"
)

// Neighborhood price range tokens.
const (
	PriceAll      = "all"
	PriceUnder5M  = "under-5m"
	Price5To10M   = "5m-10m"
	PriceAbove10M = "above-10m"

	AmenityAll = "all"
)

const (
	fiveMillion = 5_000_000
	tenMillion  = 10_000_000
)

// FilterListings returns the listings matching selector, in catalog order.
// "all" passes everything, "premium" passes premium listings of any type, and
// any other selector must equal the listing type exactly.
func FilterListings(selector string, listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matchesListing(selector, &l) {
			out = append(out, l)
		}
	}
	return out
}

func matchesListing(selector string, l *models.Listing) bool {
	switch {
	case selector == FilterAll:
		return true
	case selector == FilterPremium && l.IsPremium:
		return true
	default:
		return l.Type == selector
	}
}

// FilterNeighborhoods returns the neighborhoods that fall in priceRange and
// offer amenity. Both conditions must hold.
func FilterNeighborhoods(priceRange, amenity string, neighborhoods []models.Neighborhood) []models.Neighborhood {
	out := make([]models.Neighborhood, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		if !inPriceRange(priceRange, n.Stats.AvgPrice) {
			continue
		}
		if amenity != AmenityAll && !n.HasAmenity(amenity) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// inPriceRange applies the bucket boundaries: under is exclusive of 5M, the
// middle bucket includes both 5M and 10M, above is exclusive of 10M.
// Unrecognised tokens reject nothing.
func inPriceRange(priceRange string, avg int64) bool {
	switch priceRange {
	case PriceUnder5M:
		return avg < fiveMillion
	case Price5To10M:
		return avg >= fiveMillion && avg <= tenMillion
	case PriceAbove10M:
		return avg > tenMillion
	default:
		return true
	}
}

// CountPremium returns how many listings are flagged premium.
func CountPremium(listings []models.Listing) int {
	n := 0
	for _, l := range listings {
		if l.IsPremium {
			n++
		}
	}
	return n
}
