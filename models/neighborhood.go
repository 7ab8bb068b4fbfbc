package models

// NeighborhoodStats is the summary block shown on a neighborhood card.
type NeighborhoodStats struct {
	AvgPrice   int64   `json:"avgPrice"`
	Properties int     `json:"properties"`
	Rating     float64 `json:"rating"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Neighborhood is an area in the neighborhood browser.
//
// Features and Amenities are independent fields even though the seed data
// fills them with overlapping values. Only Amenities takes part in filtering.
type Neighborhood struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Stats       NeighborhoodStats `json:"stats"`
	Features    []string          `json:"features"`
	Trending    bool              `json:"trending,omitempty"`
	Coordinates Coordinates       `json:"coordinates"`
	Amenities   []string          `json:"amenities"`
	Schools     int               `json:"schools"`
	Safety      int               `json:"safety"`
}

// HasAmenity reports whether amenity is listed verbatim in n.Amenities.
func (n *Neighborhood) HasAmenity(amenity string) bool {
	for _, a := range n.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}
