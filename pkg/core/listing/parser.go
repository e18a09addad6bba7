package listing

import (
	"fmt"
	"time"
)

// Parser converts yad2 API JSON into Listing values. The API nests
// listings as {"data": [[listing, listing, ...]]} with deeply nested
// detail objects; everything optional is extracted defensively.
type Parser struct{}

// NewParser returns a listing parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseResponse extracts every listing from a full API response.
func (p *Parser) ParseResponse(response map[string]any, city string) []Listing {
	var listings []Listing

	outer, ok := response["data"].([]any)
	if !ok || len(outer) == 0 {
		return listings
	}

	inner, ok := outer[0].([]any)
	if !ok {
		return listings
	}

	for _, item := range inner {
		if obj, ok := item.(map[string]any); ok {
			listings = append(listings, p.ParseListing(obj, city))
		}
	}
	return listings
}

// ParseListing maps one listing object to a Listing. The provided city is
// a fallback when the payload doesn't carry one.
func (p *Parser) ParseListing(data map[string]any, city string) Listing {
	additional := asObject(data["additionalDetails"])
	inProperty := asObject(data["inProperty"])
	addressData := asObject(data["address"])
	metadata := asObject(data["metaData"])
	house := asObject(addressData["house"])

	token := "unknown"
	if s, ok := data["token"].(string); ok && s != "" {
		token = s
	}

	extractedCity := nestedText(addressData, "city")
	if extractedCity == "" {
		extractedCity = city
	}

	l := Listing{
		City:         extractedCity,
		URL:          fmt.Sprintf(listingURLFormat, token),
		ScrapedAt:    time.Now(),
		Price:        asInt64(data["price"]),
		Rooms:        asFloat(additional["roomsCount"]),
		Floor:        asInt(house["floor"]),
		SquareMeters: asInt(additional["squareMeter"]),
		Address:      buildAddress(addressData, house),
		Neighborhood: nestedText(addressData, "neighborhood"),
		AssetType:    nestedText(additional, "property"),
		TotalFloors:  asInt(additional["buildingTopFloor"]),
		YearBuilt:    asInt(additional["yearBuilt"]),
		Elevator:     asBool(inProperty["includeElevator"]),
		Parking:      asInt(additional["parkingSpacesCount"]),
		Balconies:    asInt(additional["balconiesCount"]),
		SafeRoom:     asBool(inProperty["includeSecurityRoom"]),
		StorageUnit:  asBool(inProperty["includeWarehouse"]),
		Condition:    nestedText(additional, "propertyCondition"),
		EntranceDate: parseEntranceDate(additional["entranceDate"]),
	}

	if desc, ok := metadata["description"].(string); ok {
		l.Description = desc
	}

	return l
}

func buildAddress(addressData, house map[string]any) string {
	street := nestedText(addressData, "street")
	if street == "" {
		return ""
	}
	if number := asInt(house["number"]); number != nil {
		return fmt.Sprintf("%s %d", street, *number)
	}
	return street
}

// nestedText pulls the "text" field from a nested object like
// {"neighborhood": {"text": "..."}}.
func nestedText(parent map[string]any, key string) string {
	obj := asObject(parent[key])
	if s, ok := obj["text"].(string); ok {
		return s
	}
	return ""
}

// parseEntranceDate narrows an ISO datetime string to YYYY-MM-DD.
func parseEntranceDate(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asFloat(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func asInt(v any) *int {
	if f, ok := v.(float64); ok {
		i := int(f)
		return &i
	}
	return nil
}

func asInt64(v any) *int64 {
	if f, ok := v.(float64); ok {
		i := int64(f)
		return &i
	}
	return nil
}

func asBool(v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}
