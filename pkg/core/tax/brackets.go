// Package tax implements Israeli purchase tax (progressive brackets) and
// the flat capital-gains tax applied at sale.
//
// Bracket amounts and rates are updated annually by the tax authority;
// the tables below are the 2025 schedules.
package tax

// Bracket is a single tier of a progressive tax schedule. Max is nil for
// the unbounded top tier.
type Bracket struct {
	Min  float64
	Max  *float64 // nil means no upper limit
	Rate float64
}

// AppliesTo reports whether value falls inside this bracket's bounds
// (inclusive lower, exclusive upper).
func (b Bracket) AppliesTo(value float64) bool {
	if value < b.Min {
		return false
	}
	if b.Max == nil {
		return true
	}
	return value < *b.Max
}

func bound(v float64) *float64 { return &v }

// FirstHouseBrackets is the schedule for a buyer's only residence. The
// bottom tier is fully exempt.
var FirstHouseBrackets = []Bracket{
	{Min: 0, Max: bound(1_805_000), Rate: 0.0},
	{Min: 1_805_000, Max: bound(2_085_000), Rate: 0.035},
	{Min: 2_085_000, Max: bound(5_000_000), Rate: 0.05},
	{Min: 5_000_000, Max: bound(17_000_000), Rate: 0.075},
	{Min: 17_000_000, Max: nil, Rate: 0.10},
}

// AdditionalHouseBrackets is the schedule for a second or further property:
// a flat 8% through the same tiers, jumping to 10% above the luxury
// threshold.
var AdditionalHouseBrackets = []Bracket{
	{Min: 0, Max: bound(1_805_000), Rate: 0.08},
	{Min: 1_805_000, Max: bound(2_085_000), Rate: 0.08},
	{Min: 2_085_000, Max: bound(5_000_000), Rate: 0.08},
	{Min: 5_000_000, Max: bound(17_000_000), Rate: 0.08},
	{Min: 17_000_000, Max: nil, Rate: 0.10},
}

// DefaultCapitalGainsRate is the flat rate applied to the taxable gain at
// sale.
const DefaultCapitalGainsRate = 0.25

// EvaluateBrackets computes progressive tax over an ordered bracket list:
// each tier's rate applies only to the slice of amount inside its bounds.
// Amounts at or below zero yield zero tax.
func EvaluateBrackets(brackets []Bracket, amount float64) float64 {
	if amount <= 0 {
		return 0
	}

	var total float64
	for _, b := range brackets {
		if amount <= b.Min {
			break
		}

		upper := amount
		if b.Max != nil && *b.Max < upper {
			upper = *b.Max
		}

		if portion := upper - b.Min; portion > 0 {
			total += portion * b.Rate
		}
	}
	return total
}

// PurchaseTax computes the purchase tax for a property at the given value,
// keyed on whether it is the buyer's first (only) house.
func PurchaseTax(propertyValue float64, firstHouse bool) float64 {
	brackets := AdditionalHouseBrackets
	if firstHouse {
		brackets = FirstHouseBrackets
	}
	return EvaluateBrackets(brackets, propertyValue)
}

// PurchaseTaxRate returns the effective purchase tax rate as a decimal.
func PurchaseTaxRate(propertyValue float64, firstHouse bool) float64 {
	if propertyValue <= 0 {
		return 0
	}
	return PurchaseTax(propertyValue, firstHouse) / propertyValue
}

// CapitalGainsTax computes the flat-rate tax on the sale gain. Purchase tax
// paid at acquisition and improvement costs are deductible; losses are
// never taxed.
func CapitalGainsTax(salePrice, purchasePrice, purchaseTaxPaid, improvementCosts float64) float64 {
	gain := salePrice - purchasePrice - purchaseTaxPaid - improvementCosts
	if gain <= 0 {
		return 0
	}
	return gain * DefaultCapitalGainsRate
}

// CapitalGainsTaxAt is CapitalGainsTax with an explicit rate, for callers
// that carry the rate in their assumptions.
func CapitalGainsTaxAt(salePrice, purchasePrice, purchaseTaxPaid, improvementCosts, rate float64) float64 {
	gain := salePrice - purchasePrice - purchaseTaxPaid - improvementCosts
	if gain <= 0 {
		return 0
	}
	return gain * rate
}
