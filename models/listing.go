package models

// Listing is a single rentable property shown on the explore page.
type Listing struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Price     int64    `json:"price"`
	Images    []string `json:"images"`
	Beds      int      `json:"beds"`
	Baths     float64  `json:"baths"`
	Sqft      int      `json:"sqft"`
	Type      string   `json:"type"`
	IsNew     bool     `json:"isNew,omitempty"`
	IsPremium bool     `json:"isPremium,omitempty"`
}

// CoverImage returns the image displayed on cards. Only the first image is
// ever shown.
func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// SavedListing is a Listing the visitor has put on their wishlist.
type SavedListing struct {
	Listing
	SavedDate string `json:"savedDate"`
}

// RawListing holds one unprocessed CSV row before cleaning. Every field is
// kept as text so that malformed values can be reported instead of failing
// the whole import.
type RawListing struct {
	ID        string
	Title     string
	Location  string
	RawPrice  string
	Images    string
	Beds      string
	Baths     string
	Sqft      string
	Type      string
	IsNew     string
	IsPremium string
}
