package models

import (
	"encoding/json"
	"fmt"
)

// Icon identifies the glyph drawn on a property type card. Records store the
// identifier only; the view layer decides how an icon is rendered.
type Icon int

const (
	IconBuilding2 Icon = iota
	IconHome
	IconCastle
	IconHotel
	IconBuilding
	IconWarehouse
)

var iconNames = map[Icon]string{
	IconBuilding2: "building-2",
	IconHome:      "home",
	IconCastle:    "castle",
	IconHotel:     "hotel",
	IconBuilding:  "building",
	IconWarehouse: "warehouse",
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return fmt.Sprintf("icon(%d)", int(i))
}

// ParseIcon maps an icon name back to its identifier.
func ParseIcon(name string) (Icon, error) {
	for icon, n := range iconNames {
		if n == name {
			return icon, nil
		}
	}
	return 0, fmt.Errorf("unknown icon %q", name)
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseIcon(name)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// PropertyType is one category on the property types page.
type PropertyType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        Icon     `json:"icon"`
	Count       int      `json:"count"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
	PriceRange  string   `json:"priceRange"`
	Popular     bool     `json:"popular,omitempty"`
}
