// Package listing fetches and parses yad2 real-estate listings. It is a
// peripheral collaborator of the scenario engine: scraped prices prefill
// scenario inputs, nothing here participates in a calculation stage.
package listing

import (
	"time"

	"mortgage_scenario/pkg/core/scenario"
)

// Listing is one real-estate listing as extracted from the yad2 API.
// Pointer fields are absent when the source didn't carry them.
type Listing struct {
	City      string    `json:"city"`
	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scraped_at"`

	Price        *int64   `json:"price,omitempty"`
	Rooms        *float64 `json:"rooms,omitempty"`
	Floor        *int     `json:"floor,omitempty"`
	SquareMeters *int     `json:"sqm,omitempty"`
	Address      string   `json:"address,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	AssetType    string   `json:"asset_type,omitempty"`
	Description  string   `json:"description,omitempty"`

	TotalFloors *int  `json:"total_floors,omitempty"`
	YearBuilt   *int  `json:"year_built,omitempty"`
	Elevator    *bool `json:"elevator,omitempty"`

	Parking     *int   `json:"parking,omitempty"`
	Balconies   *int   `json:"balconies,omitempty"`
	SafeRoom    *bool  `json:"mamad,omitempty"`
	StorageUnit *bool  `json:"storage_unit,omitempty"`
	Condition   string `json:"condition,omitempty"`

	EntranceDate string `json:"entrance_date,omitempty"`
}

// CityIDs maps Hebrew city names to yad2 city IDs used in API queries.
var CityIDs = map[string]int{
	"באר שבע":      9000,
	"תל אביב":      5000,
	"ירושלים":      3000,
	"חיפה":         4000,
	"ראשון לציון":  8300,
	"פתח תקווה":    7900,
	"אשדוד":        70,
	"נתניה":        7400,
	"חולון":        6600,
	"בני ברק":      6200,
	"רמת גן":       8600,
	"אשקלון":       2100,
	"רחובות":       8400,
	"בת ים":        6100,
	"הרצליה":       6400,
	"כפר סבא":      6900,
	"מודיעין":      1139,
	"רעננה":        8700,
	"נצרת":         7300,
}

// ScenarioInputsFromListing prefills scenario inputs from a scraped price.
// Capital, income, and horizon fields still come from the caller; this only
// seeds what the listing knows.
func ScenarioInputsFromListing(l Listing, base scenario.Inputs) scenario.Inputs {
	if l.Price != nil && *l.Price > 0 {
		base.PropertyPrice = float64(*l.Price)
	}
	return base
}
