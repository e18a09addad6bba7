// Package config provides named assumption and restriction bundles plus
// YAML loading for user-supplied overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"mortgage_scenario/pkg/core/scenario"
)

// ConservativeAssumptions uses lower expected returns and higher costs,
// for risk-averse investors.
func ConservativeAssumptions() scenario.Assumptions {
	return scenario.Assumptions{
		RentalYield:         0.025,
		RentIncreaseRate:    0.02,
		MortgageRate:        0.055,
		EarlyRepaymentRate:  0.04,
		AppreciationRate:    0.025,
		PortfolioReturnRate: 0.05,
		RiskFreeRate:        0.025,
		CapitalGainsTaxRate: 0.25,
	}
}

// ModerateAssumptions is the market-standard profile, identical to the
// calculator defaults.
func ModerateAssumptions() scenario.Assumptions {
	return scenario.DefaultAssumptions()
}

// AggressiveAssumptions uses optimistic returns and financing costs.
func AggressiveAssumptions() scenario.Assumptions {
	return scenario.Assumptions{
		RentalYield:         0.032,
		RentIncreaseRate:    0.04,
		MortgageRate:        0.042,
		EarlyRepaymentRate:  0.03,
		AppreciationRate:    0.06,
		PortfolioReturnRate: 0.10,
		RiskFreeRate:        0.03,
		CapitalGainsTaxRate: 0.25,
	}
}

// StrictRestrictions enforces conservative lending standards.
func StrictRestrictions() scenario.Restrictions {
	return scenario.Restrictions{
		MaxMortgageToIncomeRatio: 0.25,
		MinDownPaymentPercentage: 0.25,
		MaxLoanToValue:           0.70,
		MaxMortgagePercentage:    0.70,
		MaxUrbanRenewalValue:     300_000,
		RequirePositiveCashFlow:  true,
	}
}

// LenientRestrictions allows more leverage and flexibility.
func LenientRestrictions() scenario.Restrictions {
	return scenario.Restrictions{
		MaxMortgageToIncomeRatio: 0.40,
		MinDownPaymentPercentage: 0.10,
		MaxLoanToValue:           0.90,
		MaxMortgagePercentage:    0.90,
		MaxUrbanRenewalValue:     500_000,
		RequirePositiveCashFlow:  false,
	}
}

// AssumptionsByName resolves a preset name (conservative, moderate,
// aggressive) to its bundle.
func AssumptionsByName(name string) (scenario.Assumptions, error) {
	switch name {
	case "conservative":
		return ConservativeAssumptions(), nil
	case "moderate", "":
		return ModerateAssumptions(), nil
	case "aggressive":
		return AggressiveAssumptions(), nil
	}
	return scenario.Assumptions{}, fmt.Errorf("unknown assumptions preset %q", name)
}

// RestrictionsByName resolves a preset name (strict, default, lenient) to
// its bundle.
func RestrictionsByName(name string) (scenario.Restrictions, error) {
	switch name {
	case "strict":
		return StrictRestrictions(), nil
	case "default", "":
		return scenario.DefaultRestrictions(), nil
	case "lenient":
		return LenientRestrictions(), nil
	}
	return scenario.Restrictions{}, fmt.Errorf("unknown restrictions preset %q", name)
}

type assumptionsFile struct {
	RentalYield         *float64 `yaml:"rental_yield"`
	RentIncreaseRate    *float64 `yaml:"rent_increase_rate"`
	MortgageRate        *float64 `yaml:"mortgage_rate"`
	EarlyRepaymentRate  *float64 `yaml:"early_repayment_rate"`
	AppreciationRate    *float64 `yaml:"appreciation_rate"`
	PortfolioReturnRate *float64 `yaml:"portfolio_return_rate"`
	RiskFreeRate        *float64 `yaml:"risk_free_rate"`
	CapitalGainsTaxRate *float64 `yaml:"capital_gains_tax_rate"`
}

// LoadAssumptions reads a YAML file of assumption overrides. Fields absent
// from the file keep their default values.
func LoadAssumptions(path string) (scenario.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario.Assumptions{}, fmt.Errorf("failed to read assumptions file: %w", err)
	}
	return ParseAssumptions(data)
}

// ParseAssumptions decodes assumption overrides from YAML bytes on top of
// the defaults.
func ParseAssumptions(data []byte) (scenario.Assumptions, error) {
	var file assumptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return scenario.Assumptions{}, fmt.Errorf("failed to parse assumptions yaml: %w", err)
	}

	a := scenario.DefaultAssumptions()
	setIf := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&a.RentalYield, file.RentalYield)
	setIf(&a.RentIncreaseRate, file.RentIncreaseRate)
	setIf(&a.MortgageRate, file.MortgageRate)
	setIf(&a.EarlyRepaymentRate, file.EarlyRepaymentRate)
	setIf(&a.AppreciationRate, file.AppreciationRate)
	setIf(&a.PortfolioReturnRate, file.PortfolioReturnRate)
	setIf(&a.RiskFreeRate, file.RiskFreeRate)
	setIf(&a.CapitalGainsTaxRate, file.CapitalGainsTaxRate)
	return a, nil
}

type restrictionsFile struct {
	MaxMortgageToIncomeRatio *float64 `yaml:"max_mortgage_to_income_ratio"`
	MinDownPaymentPercentage *float64 `yaml:"min_down_payment_percentage"`
	MaxLoanToValue           *float64 `yaml:"max_loan_to_value"`
	MaxMortgagePercentage    *float64 `yaml:"max_mortgage_percentage"`
	MaxUrbanRenewalValue     *float64 `yaml:"max_urban_renewal_value"`
	RequirePositiveCashFlow  *bool    `yaml:"require_positive_cash_flow"`
}

// LoadRestrictions reads a YAML file of restriction overrides on top of
// the defaults.
func LoadRestrictions(path string) (scenario.Restrictions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario.Restrictions{}, fmt.Errorf("failed to read restrictions file: %w", err)
	}

	var file restrictionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return scenario.Restrictions{}, fmt.Errorf("failed to parse restrictions yaml: %w", err)
	}

	r := scenario.DefaultRestrictions()
	if file.MaxMortgageToIncomeRatio != nil {
		r.MaxMortgageToIncomeRatio = *file.MaxMortgageToIncomeRatio
	}
	if file.MinDownPaymentPercentage != nil {
		r.MinDownPaymentPercentage = *file.MinDownPaymentPercentage
	}
	if file.MaxLoanToValue != nil {
		r.MaxLoanToValue = *file.MaxLoanToValue
	}
	if file.MaxMortgagePercentage != nil {
		r.MaxMortgagePercentage = *file.MaxMortgagePercentage
	}
	if file.MaxUrbanRenewalValue != nil {
		r.MaxUrbanRenewalValue = *file.MaxUrbanRenewalValue
	}
	if file.RequirePositiveCashFlow != nil {
		r.RequirePositiveCashFlow = *file.RequirePositiveCashFlow
	}
	return r, nil
}

// AssumptionDescriptions maps assumption field names to short
// explanations, for help output and exports.
func AssumptionDescriptions() map[string]string {
	return map[string]string{
		"rental_yield":           "Annual rental yield as percentage of property price (e.g., 0.028 = 2.8%)",
		"rent_increase_rate":     "Annual rate at which rent increases (e.g., 0.03 = 3%)",
		"mortgage_rate":          "Annual mortgage interest rate (e.g., 0.048 = 4.8%)",
		"early_repayment_rate":   "Interest rate used for early repayment penalty calculation",
		"appreciation_rate":      "Annual property value appreciation rate (e.g., 0.04 = 4%)",
		"portfolio_return_rate":  "Expected annual return for alternative portfolio investment",
		"risk_free_rate":         "Risk-free rate used for discounting future cash flows",
		"capital_gains_tax_rate": "Tax rate applied to capital gains (e.g., 0.25 = 25%)",
	}
}

// RestrictionDescriptions maps restriction field names to short
// explanations.
func RestrictionDescriptions() map[string]string {
	return map[string]string{
		"max_mortgage_to_income_ratio": "Maximum mortgage payment as fraction of monthly income",
		"min_down_payment_percentage":  "Minimum down payment as fraction of property price",
		"max_loan_to_value":            "Maximum loan amount as fraction of property value",
		"max_mortgage_percentage":      "Maximum mortgage as percentage of property value",
		"max_urban_renewal_value":      "Maximum value that can be attributed to urban renewal",
		"require_positive_cash_flow":   "Whether monthly cash flow must be positive",
	}
}
