package tax

import (
	"math"
	"testing"
)

func TestFirstHouseExemptTier(t *testing.T) {
	// Anything at or below the first bound is fully exempt.
	for _, v := range []float64{0, 1, 500_000, 1_804_999, 1_805_000} {
		if tax := PurchaseTax(v, true); tax != 0 {
			t.Errorf("Expected 0 tax at %f, got %f", v, tax)
		}
	}
}

func TestFirstHouseSecondTier(t *testing.T) {
	// 100,000 above the exemption: 100,000 * 3.5% = 3,500.
	tax := PurchaseTax(1_905_000, true)
	if math.Abs(tax-3500) > 0.01 {
		t.Errorf("Expected 3500, got %f", tax)
	}
}

func TestFirstHouseProgressive(t *testing.T) {
	// 2,500,000 first house:
	// tier 1: 0
	// tier 2: (2,085,000 - 1,805,000) * 3.5% = 9,800
	// tier 3: (2,500,000 - 2,085,000) * 5%   = 20,750
	// total = 30,550
	tax := PurchaseTax(2_500_000, true)
	if math.Abs(tax-30_550) > 0.01 {
		t.Errorf("Expected 30550, got %f", tax)
	}
}

func TestFirstHouseTopTiers(t *testing.T) {
	// 6,000,000 first house:
	// tier 2: 280,000 * 3.5%   = 9,800
	// tier 3: 2,915,000 * 5%   = 145,750
	// tier 4: 1,000,000 * 7.5% = 75,000
	// total = 230,550
	tax := PurchaseTax(6_000_000, true)
	if math.Abs(tax-230_550) > 0.01 {
		t.Errorf("Expected 230550, got %f", tax)
	}

	// 20,000,000 first house adds the 10% luxury tier:
	// tier 2: 9,800
	// tier 3: 145,750
	// tier 4: 12,000,000 * 7.5% = 900,000
	// tier 5: 3,000,000 * 10%   = 300,000
	// total = 1,355,550
	tax = PurchaseTax(20_000_000, true)
	if math.Abs(tax-1_355_550) > 0.01 {
		t.Errorf("Expected 1355550, got %f", tax)
	}
}

func TestAdditionalHouseFlatRate(t *testing.T) {
	// Additional properties pay 8% from the first shekel.
	tax := PurchaseTax(2_000_000, false)
	if math.Abs(tax-160_000) > 0.01 {
		t.Errorf("Expected 160000, got %f", tax)
	}
}

func TestAdditionalHouseLuxuryTier(t *testing.T) {
	// 18,000,000: 17,000,000 * 8% + 1,000,000 * 10% = 1,460,000
	tax := PurchaseTax(18_000_000, false)
	if math.Abs(tax-1_460_000) > 0.01 {
		t.Errorf("Expected 1460000, got %f", tax)
	}
}

func TestPurchaseTaxMonotonic(t *testing.T) {
	// Tax never decreases as the value rises.
	prev := 0.0
	for v := 0.0; v <= 20_000_000; v += 250_000 {
		tax := PurchaseTax(v, true)
		if tax < prev {
			t.Fatalf("Tax decreased at value %f: %f < %f", v, tax, prev)
		}
		prev = tax
	}
}

func TestPurchaseTaxRate(t *testing.T) {
	// Effective rate on an additional 2,000,000 property is exactly 8%.
	rate := PurchaseTaxRate(2_000_000, false)
	if math.Abs(rate-0.08) > 1e-9 {
		t.Errorf("Expected 0.08, got %f", rate)
	}
	if PurchaseTaxRate(0, true) != 0 {
		t.Errorf("Expected zero rate at zero value")
	}
}

func TestCapitalGainsTax(t *testing.T) {
	// Gain = 3,000,000 - 2,000,000 - 30,000 - 70,000 = 900,000
	// Tax = 900,000 * 25% = 225,000
	tax := CapitalGainsTax(3_000_000, 2_000_000, 30_000, 70_000)
	if math.Abs(tax-225_000) > 0.01 {
		t.Errorf("Expected 225000, got %f", tax)
	}
}

func TestCapitalGainsTaxNoLossTax(t *testing.T) {
	// Selling at a loss owes nothing.
	if tax := CapitalGainsTax(1_800_000, 2_000_000, 0, 0); tax != 0 {
		t.Errorf("Expected 0 tax on a loss, got %f", tax)
	}
	// Deductions can fully offset the gain.
	if tax := CapitalGainsTax(2_100_000, 2_000_000, 60_000, 60_000); tax != 0 {
		t.Errorf("Expected 0 tax when deductions cover the gain, got %f", tax)
	}
}

func TestCapitalGainsTaxAt(t *testing.T) {
	tax := CapitalGainsTaxAt(3_000_000, 2_000_000, 0, 0, 0.30)
	if math.Abs(tax-300_000) > 0.01 {
		t.Errorf("Expected 300000 at 30%%, got %f", tax)
	}
}

func TestEvaluateBracketsNegativeAmount(t *testing.T) {
	if tax := EvaluateBrackets(FirstHouseBrackets, -100); tax != 0 {
		t.Errorf("Expected 0 for negative amount, got %f", tax)
	}
}
