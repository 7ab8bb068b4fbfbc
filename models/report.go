package models

// CatalogReport holds the computed statistics over the listing catalog.
type CatalogReport struct {
	TotalListings      int            `json:"totalListings"`
	PremiumListings    int            `json:"premiumListings"`
	NewListings        int            `json:"newListings"`
	AveragePrice       float64        `json:"averagePrice"`
	MinPrice           int64          `json:"minPrice"`
	MaxPrice           int64          `json:"maxPrice"`
	MostExpensive      *Listing       `json:"mostExpensive,omitempty"`
	Largest            []*Listing     `json:"largest"`
	ListingsByType     map[string]int `json:"listingsByType"`
	ListingsByLocation map[string]int `json:"listingsByLocation"`
}

// StayTab selects the landing page mode. Suggestions and quick stats are
// keyed by it.
type StayTab string

const (
	TabRental   StayTab = "rental"
	TabShortlet StayTab = "shortlet"
)

// QuickStat is a headline figure on the landing page.
type QuickStat struct {
	Title string `json:"title"`
	Count string `json:"count"`
	Icon  string `json:"icon"`
}

// Link is a static navigation or footer entry.
type Link struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

// LinkSection is a titled group of footer links.
type LinkSection struct {
	Title string `json:"title" yaml:"title"`
	Links []Link `json:"links" yaml:"links"`
}
