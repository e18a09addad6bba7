package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModerateMatchesDefaults(t *testing.T) {
	m := ModerateAssumptions()
	if m.MortgageRate != 0.048 || m.PortfolioReturnRate != 0.07 || m.CapitalGainsTaxRate != 0.25 {
		t.Errorf("Moderate profile drifted from defaults: %+v", m)
	}
}

func TestPresetsOrdering(t *testing.T) {
	// Conservative expects less from every return, aggressive expects more.
	c, m, a := ConservativeAssumptions(), ModerateAssumptions(), AggressiveAssumptions()

	if !(c.AppreciationRate < m.AppreciationRate && m.AppreciationRate < a.AppreciationRate) {
		t.Errorf("Appreciation rates out of order: %f %f %f", c.AppreciationRate, m.AppreciationRate, a.AppreciationRate)
	}
	if !(c.PortfolioReturnRate < m.PortfolioReturnRate && m.PortfolioReturnRate < a.PortfolioReturnRate) {
		t.Errorf("Portfolio returns out of order")
	}
	// Financing costs run the other way.
	if !(c.MortgageRate > m.MortgageRate && m.MortgageRate > a.MortgageRate) {
		t.Errorf("Mortgage rates out of order")
	}
}

func TestAssumptionsByName(t *testing.T) {
	if _, err := AssumptionsByName("conservative"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	// Empty string means the default profile.
	a, err := AssumptionsByName("")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if a != ModerateAssumptions() {
		t.Errorf("Empty name should resolve to moderate")
	}
	if _, err := AssumptionsByName("reckless"); err == nil {
		t.Errorf("Expected error for unknown preset")
	}
}

func TestRestrictionsByName(t *testing.T) {
	strict, err := RestrictionsByName("strict")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strict.RequirePositiveCashFlow || strict.MaxLoanToValue != 0.70 {
		t.Errorf("Strict profile mismatch: %+v", strict)
	}

	lenient, err := RestrictionsByName("lenient")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lenient.MaxLoanToValue != 0.90 || lenient.RequirePositiveCashFlow {
		t.Errorf("Lenient profile mismatch: %+v", lenient)
	}

	if _, err := RestrictionsByName("nonsense"); err == nil {
		t.Errorf("Expected error for unknown preset")
	}
}

func TestParseAssumptionsPartialOverride(t *testing.T) {
	// Only the listed fields change; everything else keeps its default.
	a, err := ParseAssumptions([]byte("mortgage_rate: 0.06\nrental_yield: 0.02\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.MortgageRate != 0.06 {
		t.Errorf("Expected mortgage rate 0.06, got %f", a.MortgageRate)
	}
	if a.RentalYield != 0.02 {
		t.Errorf("Expected rental yield 0.02, got %f", a.RentalYield)
	}
	if a.AppreciationRate != 0.04 || a.PortfolioReturnRate != 0.07 {
		t.Errorf("Unlisted fields should keep defaults: %+v", a)
	}
}

func TestParseAssumptionsZeroIsAnOverride(t *testing.T) {
	// An explicit zero is honored, it is not confused with "absent".
	a, err := ParseAssumptions([]byte("appreciation_rate: 0\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.AppreciationRate != 0 {
		t.Errorf("Expected explicit zero to stick, got %f", a.AppreciationRate)
	}
}

func TestParseAssumptionsBadYAML(t *testing.T) {
	if _, err := ParseAssumptions([]byte(": : :")); err == nil {
		t.Errorf("Expected error for malformed yaml")
	}
}

func TestLoadRestrictionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restrictions.yaml")
	content := "max_loan_to_value: 0.6\nrequire_positive_cash_flow: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRestrictions(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.MaxLoanToValue != 0.6 || !r.RequirePositiveCashFlow {
		t.Errorf("Overrides not applied: %+v", r)
	}
	if r.MaxMortgageToIncomeRatio != 0.3 {
		t.Errorf("Unlisted fields should keep defaults: %+v", r)
	}
}

func TestLoadAssumptionsMissingFile(t *testing.T) {
	if _, err := LoadAssumptions("/nonexistent/assumptions.yaml"); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestDescriptionsCoverAllFields(t *testing.T) {
	if len(AssumptionDescriptions()) != 8 {
		t.Errorf("Expected 8 assumption descriptions, got %d", len(AssumptionDescriptions()))
	}
	if len(RestrictionDescriptions()) != 6 {
		t.Errorf("Expected 6 restriction descriptions, got %d", len(RestrictionDescriptions()))
	}
}
