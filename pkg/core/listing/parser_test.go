package listing

import (
	"encoding/json"
	"testing"
)

// A trimmed-down API payload with the nesting the live endpoint uses.
const sampleResponse = `{
  "data": [[
    {
      "token": "abc123",
      "price": 1850000,
      "address": {
        "city": {"text": "באר שבע"},
        "neighborhood": {"text": "רמות"},
        "street": {"text": "יעלים"},
        "house": {"number": 12, "floor": 3}
      },
      "additionalDetails": {
        "roomsCount": 4.5,
        "squareMeter": 110,
        "property": {"text": "דירה"},
        "propertyCondition": {"text": "משופץ"},
        "buildingTopFloor": 8,
        "yearBuilt": 1998,
        "parkingSpacesCount": 1,
        "balconiesCount": 2,
        "entranceDate": "2026-03-01T00:00:00"
      },
      "inProperty": {
        "includeElevator": true,
        "includeSecurityRoom": true,
        "includeWarehouse": false
      },
      "metaData": {"description": "דירה מרווחת ומוארת"}
    },
    {
      "token": "def456",
      "price": 2100000,
      "address": {"city": {"text": "באר שבע"}}
    }
  ]]
}`

func parseSample(t *testing.T) []Listing {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal([]byte(sampleResponse), &response); err != nil {
		t.Fatalf("Bad fixture: %v", err)
	}
	return NewParser().ParseResponse(response, "באר שבע")
}

func TestParseResponse(t *testing.T) {
	listings := parseSample(t)
	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	l := listings[0]
	if l.URL != "https://www.yad2.co.il/realestate/item/abc123" {
		t.Errorf("Wrong URL: %s", l.URL)
	}
	if l.Price == nil || *l.Price != 1_850_000 {
		t.Errorf("Wrong price: %v", l.Price)
	}
	if l.Rooms == nil || *l.Rooms != 4.5 {
		t.Errorf("Wrong rooms: %v", l.Rooms)
	}
	if l.Floor == nil || *l.Floor != 3 {
		t.Errorf("Wrong floor: %v", l.Floor)
	}
	if l.SquareMeters == nil || *l.SquareMeters != 110 {
		t.Errorf("Wrong sqm: %v", l.SquareMeters)
	}
	if l.City != "באר שבע" || l.Neighborhood != "רמות" {
		t.Errorf("Wrong location: %s / %s", l.City, l.Neighborhood)
	}
	if l.Address != "יעלים 12" {
		t.Errorf("Wrong address: %s", l.Address)
	}
	if l.AssetType != "דירה" || l.Condition != "משופץ" {
		t.Errorf("Wrong type/condition: %s / %s", l.AssetType, l.Condition)
	}
	if l.Elevator == nil || !*l.Elevator {
		t.Errorf("Expected elevator true")
	}
	if l.StorageUnit == nil || *l.StorageUnit {
		t.Errorf("Expected storage false")
	}
	if l.EntranceDate != "2026-03-01" {
		t.Errorf("Wrong entrance date: %s", l.EntranceDate)
	}
	if l.Description != "דירה מרווחת ומוארת" {
		t.Errorf("Wrong description: %s", l.Description)
	}
}

func TestParseListingSparsePayload(t *testing.T) {
	// Missing detail objects leave the optional fields nil, never panic.
	listings := parseSample(t)
	l := listings[1]

	if l.Price == nil || *l.Price != 2_100_000 {
		t.Errorf("Wrong price: %v", l.Price)
	}
	if l.Rooms != nil || l.Floor != nil || l.Elevator != nil {
		t.Errorf("Sparse listing should leave optionals nil: %+v", l)
	}
	if l.Address != "" || l.EntranceDate != "" {
		t.Errorf("Sparse listing should have empty strings: %+v", l)
	}
}

func TestParseResponseMalformed(t *testing.T) {
	p := NewParser()

	for _, response := range []map[string]any{
		{},
		{"data": "not an array"},
		{"data": []any{}},
		{"data": []any{"not a nested array"}},
		{"data": []any{[]any{"not an object", 42}}},
	} {
		if got := p.ParseResponse(response, "חיפה"); len(got) != 0 {
			t.Errorf("Expected no listings from %v, got %d", response, len(got))
		}
	}
}

func TestParseListingUnknownToken(t *testing.T) {
	l := NewParser().ParseListing(map[string]any{"price": 1000000.0}, "חיפה")
	if l.URL != "https://www.yad2.co.il/realestate/item/unknown" {
		t.Errorf("Missing token should map to the unknown URL, got %s", l.URL)
	}
	if l.City != "חיפה" {
		t.Errorf("Caller city should be the fallback, got %s", l.City)
	}
}

func TestScenarioInputsFromListing(t *testing.T) {
	price := int64(1_850_000)
	base := Listing{Price: &price}

	in := ScenarioInputsFromListing(base, baseInputs())
	if in.PropertyPrice != 1_850_000 {
		t.Errorf("Expected listing price to seed the inputs, got %f", in.PropertyPrice)
	}

	// No price: the base inputs stay untouched.
	in = ScenarioInputsFromListing(Listing{}, baseInputs())
	if in.PropertyPrice != 2_000_000 {
		t.Errorf("Expected base price to survive, got %f", in.PropertyPrice)
	}
}
