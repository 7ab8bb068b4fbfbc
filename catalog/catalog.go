// Package catalog holds the literal seed records the site is built from.
// Every accessor returns a fresh copy so callers may modify what they get
// without touching the seed.
package catalog

import "rentai/models"

// Option is a selectable filter token with its display label.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var listingFilters = []Option{
	{ID: "all", Label: "All Properties"},
	{ID: "apartment", Label: "Apartments"},
	{ID: "villa", Label: "Villas"},
	{ID: "duplex", Label: "Duplexes"},
	{ID: "premium", Label: "Premium"},
}

var priceRanges = []Option{
	{ID: "all", Label: "All Prices"},
	{ID: "under-5m", Label: "Under ₦5M"},
	{ID: "5m-10m", Label: "₦5M - ₦10M"},
	{ID: "above-10m", Label: "Above ₦10M"},
}

var amenities = []string{
	"Schools",
	"Shopping",
	"Restaurants",
	"Parks",
	"Waterfront",
	"Nightlife",
}

// ListingFilters returns the explore page filter pills in display order.
func ListingFilters() []Option { return append([]Option(nil), listingFilters...) }

// PriceRanges returns the neighborhood price range options.
func PriceRanges() []Option { return append([]Option(nil), priceRanges...) }

// Amenities returns the amenity chips offered by the neighborhood browser.
func Amenities() []string { return append([]string(nil), amenities...) }

var listings = []models.Listing{
	{
		ID:        "1",
		Title:     "Luxury Penthouse with Ocean View",
		Location:  "Banana Island, Ikoyi",
		Price:     15000000,
		Images:    []string{"/luxury-penthouse.jpg"},
		Beds:      4,
		Baths:     4.5,
		Sqft:      3200,
		Type:      "apartment",
		IsPremium: true,
	},
	{
		ID:       "2",
		Title:    "Modern Villa with Pool",
		Location: "Lekki Phase 1",
		Price:    8500000,
		Images:   []string{"/modern-villa.jpg"},
		Beds:     5,
		Baths:    5,
		Sqft:     4500,
		Type:     "villa",
		IsNew:    true,
	},
	{
		ID:       "3",
		Title:    "Cozy Studio Apartment",
		Location: "Victoria Island",
		Price:    2500000,
		Images:   []string{"/studio-apt.jpg"},
		Beds:     1,
		Baths:    1,
		Sqft:     650,
		Type:     "apartment",
	},
	{
		ID:        "4",
		Title:     "Waterfront Duplex",
		Location:  "Osborne, Ikoyi",
		Price:     12000000,
		Images:    []string{"/waterfront-duplex.jpg"},
		Beds:      4,
		Baths:     4,
		Sqft:      3800,
		Type:      "duplex",
		IsPremium: true,
	},
}

// Listings returns the explore catalog.
func Listings() []models.Listing {
	out := make([]models.Listing, len(listings))
	for i, l := range listings {
		out[i] = cloneListing(l)
	}
	return out
}

var neighborhoods = []models.Neighborhood{
	{
		ID:          "ikoyi",
		Name:        "Ikoyi",
		Description: "Luxurious residential area with waterfront properties and upscale amenities",
		Image:       "/ikoyi.jpg",
		Stats:       models.NeighborhoodStats{AvgPrice: 12000000, Properties: 150, Rating: 4.8},
		Features:    []string{"Waterfront Views", "Luxury Homes", "Private Schools", "Golf Clubs"},
		Trending:    true,
		Coordinates: models.Coordinates{Lat: 6.5244, Lng: 3.3792},
		Amenities:   []string{"Waterfront", "Luxury Homes", "Private Schools", "Golf Clubs"},
		Schools:     5,
		Safety:      4,
	},
	{
		ID:          "vi",
		Name:        "Victoria Island",
		Description: "Prime business district with modern apartments and vibrant nightlife",
		Image:       "/vi.jpg",
		Stats:       models.NeighborhoodStats{AvgPrice: 8500000, Properties: 200, Rating: 4.6},
		Features:    []string{"Beach Access", "Shopping Malls", "Restaurants", "Nightlife"},
		Coordinates: models.Coordinates{Lat: 6.5244, Lng: 3.3792},
		Amenities:   []string{"Beach Access", "Shopping Malls", "Restaurants", "Nightlife"},
		Schools:     3,
		Safety:      5,
	},
	{
		ID:          "lekki1",
		Name:        "Lekki Phase 1",
		Description: "Modern residential area with excellent infrastructure and family-friendly environment",
		Image:       "/lekki.jpg",
		Stats:       models.NeighborhoodStats{AvgPrice: 5000000, Properties: 300, Rating: 4.5},
		Features:    []string{"Gated Estates", "Modern Infrastructure", "Schools", "Shopping Centers"},
		Trending:    true,
		Coordinates: models.Coordinates{Lat: 6.5244, Lng: 3.3792},
		Amenities:   []string{"Gated Estates", "Modern Infrastructure", "Schools", "Shopping Centers"},
		Schools:     4,
		Safety:      3,
	},
}

// Neighborhoods returns the neighborhood catalog.
func Neighborhoods() []models.Neighborhood {
	out := make([]models.Neighborhood, len(neighborhoods))
	for i, n := range neighborhoods {
		n.Features = append([]string(nil), n.Features...)
		n.Amenities = append([]string(nil), n.Amenities...)
		out[i] = n
	}
	return out
}

var propertyTypes = []models.PropertyType{
	{
		ID:          "apartments",
		Name:        "Apartments",
		Description: "Modern living spaces from studios to penthouses",
		Icon:        models.IconBuilding2,
		Count:       450,
		Image:       "/apartment.jpg",
		Features:    []string{"24/7 Security", "Parking", "Gym", "Pool"},
		PriceRange:  "₦2M - ₦15M/year",
		Popular:     true,
	},
	{
		ID:          "houses",
		Name:        "Houses",
		Description: "Standalone homes with private spaces",
		Icon:        models.IconHome,
		Count:       280,
		Image:       "/house.jpg",
		Features:    []string{"Garden", "Garage", "Security", "BQ"},
		PriceRange:  "₦5M - ₦20M/year",
	},
	{
		ID:          "luxury-villas",
		Name:        "Luxury Villas",
		Description: "Premium properties with exclusive amenities",
		Icon:        models.IconCastle,
		Count:       120,
		Image:       "/villa.jpg",
		Features:    []string{"Pool", "Smart Home", "Ocean View", "Private Security"},
		PriceRange:  "₦15M - ₦50M/year",
		Popular:     true,
	},
	{
		ID:          "serviced",
		Name:        "Serviced Apartments",
		Description: "Fully furnished units with hotel-like services",
		Icon:        models.IconHotel,
		Count:       180,
		Image:       "/serviced.jpg",
		Features:    []string{"Housekeeping", "Utilities", "Internet", "Furnished"},
		PriceRange:  "₦4M - ₦12M/year",
	},
	{
		ID:          "commercial",
		Name:        "Commercial Spaces",
		Description: "Office and retail spaces for businesses",
		Icon:        models.IconBuilding,
		Count:       95,
		Image:       "/commercial.jpg",
		Features:    []string{"Reception", "Parking", "Meeting Rooms", "High-speed Internet"},
		PriceRange:  "₦8M - ₦30M/year",
	},
	{
		ID:          "warehouses",
		Name:        "Warehouses",
		Description: "Storage and industrial spaces",
		Icon:        models.IconWarehouse,
		Count:       45,
		Image:       "/warehouse.jpg",
		Features:    []string{"Loading Bay", "Security", "24/7 Access", "CCTV"},
		PriceRange:  "₦5M - ₦25M/year",
	},
}

// PropertyTypes returns the property type categories.
func PropertyTypes() []models.PropertyType {
	out := make([]models.PropertyType, len(propertyTypes))
	for i, p := range propertyTypes {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

var savedSeed = []models.SavedListing{
	{
		Listing: models.Listing{
			ID:        "1",
			Title:     "Luxury Penthouse with Ocean View",
			Location:  "Banana Island, Ikoyi",
			Price:     15000000,
			Images:    []string{"/luxury-penthouse.jpg"},
			Beds:      4,
			Baths:     4.5,
			Sqft:      3200,
			Type:      "Penthouse",
			IsPremium: true,
		},
		SavedDate: "2024-02-15",
	},
}

// SavedSeed returns the saved homes every new saved-page session starts with.
func SavedSeed() []models.SavedListing {
	out := make([]models.SavedListing, len(savedSeed))
	for i, s := range savedSeed {
		s.Listing = cloneListing(s.Listing)
		out[i] = s
	}
	return out
}

var suggestions = map[models.StayTab][]string{
	models.TabRental: {
		"A modern 3-bedroom apartment in Ikoyi for long-term lease...",
		"Family-friendly home near international schools in Lekki...",
		"Serviced apartment under ₦5M in Victoria Island...",
		"Pet-friendly 2-bedroom flat with 24/7 power...",
	},
	models.TabShortlet: {
		"Luxury 2-bed apartment in VI for weekend getaway...",
		"Cozy studio in Lekki for 2 weeks stay...",
		"Premium shortlet with pool for events...",
		"Furnished apartment in Ikoyi for business trips...",
	},
}

// Suggestions returns the rotating search prompts for tab. Unknown tabs get
// the rental prompts.
func Suggestions(tab models.StayTab) []string {
	s, ok := suggestions[tab]
	if !ok {
		s = suggestions[models.TabRental]
	}
	return append([]string(nil), s...)
}

var quickStats = map[models.StayTab][]models.QuickStat{
	models.TabRental: {
		{Title: "Available Homes", Count: "1,200+", Icon: "building-2"},
		{Title: "Neighborhoods", Count: "15 Areas", Icon: "map-pin"},
	},
	models.TabShortlet: {
		{Title: "Short-lets", Count: "450+", Icon: "calendar-days"},
		{Title: "Instant Book", Count: "200 Units", Icon: "star"},
	},
}

// QuickStats returns the landing page headline figures for tab.
func QuickStats(tab models.StayTab) []models.QuickStat {
	s, ok := quickStats[tab]
	if !ok {
		s = quickStats[models.TabRental]
	}
	return append([]models.QuickStat(nil), s...)
}

// ParseTab maps a query value onto a stay tab, defaulting to rental.
func ParseTab(s string) models.StayTab {
	if models.StayTab(s) == models.TabShortlet {
		return models.TabShortlet
	}
	return models.TabRental
}

func cloneListing(l models.Listing) models.Listing {
	l.Images = append([]string(nil), l.Images...)
	return l
}
