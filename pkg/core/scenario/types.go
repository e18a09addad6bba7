// Package scenario implements the multi-stage investment scenario engine:
// a leveraged real-estate purchase evaluated against depositing the same
// capital in a market portfolio over the holding period.
//
// Every metric group is computed once per calculation, in strict dependency
// order, and is read-only afterwards. There is no I/O anywhere in this
// package; independent Calculators are safe to run concurrently.
package scenario

import "fmt"

// MaxUrbanRenewalValue caps the optional urban-renewal uplift. Values above
// the cap are clamped, not rejected.
const MaxUrbanRenewalValue = 400_000

// Inputs holds the property-specific parameters supplied by the caller.
// All monetary values are in the same currency (ILS in practice).
type Inputs struct {
	PropertyPrice float64 `json:"property_price"`
	DownPayment   float64 `json:"down_payment"`
	AvailableCash float64 `json:"available_cash"`

	MonthlyIncome    float64 `json:"monthly_income"`    // net income, for mortgage-to-income validation
	MonthlyAvailable float64 `json:"monthly_available"` // free cash per month for investing

	MortgageTermYears int `json:"mortgage_term_years"`
	YearsUntilSale    int `json:"years_until_sale"`

	UrbanRenewalValue float64 `json:"urban_renewal_value"`
	IsFirstHouse      bool    `json:"is_first_house"`
	ImprovementCosts  float64 `json:"improvement_costs"` // deductible from the capital gain at sale
}

// NewInputs validates and returns scenario inputs. The urban-renewal value
// is clamped to MaxUrbanRenewalValue; every other invariant violation is an
// error that aborts scenario construction.
func NewInputs(in Inputs) (Inputs, error) {
	if in.UrbanRenewalValue > MaxUrbanRenewalValue {
		in.UrbanRenewalValue = MaxUrbanRenewalValue
	}

	switch {
	case in.PropertyPrice <= 0:
		return Inputs{}, fmt.Errorf("property price must be positive, got %.2f", in.PropertyPrice)
	case in.DownPayment < 0:
		return Inputs{}, fmt.Errorf("down payment cannot be negative, got %.2f", in.DownPayment)
	case in.AvailableCash < 0:
		return Inputs{}, fmt.Errorf("available cash cannot be negative, got %.2f", in.AvailableCash)
	case in.MortgageTermYears <= 0:
		return Inputs{}, fmt.Errorf("mortgage term must be positive, got %d", in.MortgageTermYears)
	case in.YearsUntilSale <= 0:
		return Inputs{}, fmt.Errorf("years until sale must be positive, got %d", in.YearsUntilSale)
	case in.MonthlyIncome <= 0:
		return Inputs{}, fmt.Errorf("monthly income must be positive, got %.2f", in.MonthlyIncome)
	case in.ImprovementCosts < 0:
		return Inputs{}, fmt.Errorf("improvement costs cannot be negative, got %.2f", in.ImprovementCosts)
	}

	return in, nil
}

// MonthlyRent derives the expected monthly rent from the annual rental
// yield assumption.
func (in Inputs) MonthlyRent(rentalYield float64) float64 {
	return in.PropertyPrice * rentalYield / 12
}

// MortgageAmount is the financed portion of the purchase.
func (in Inputs) MortgageAmount() float64 {
	return in.PropertyPrice - in.DownPayment
}

// Assumptions are market parameters with sensible defaults. They are
// decimals, typically in [0,1].
//
// RentIncreaseRate and RiskFreeRate are accepted and carried through but
// not consumed by any stage.
type Assumptions struct {
	RentalYield      float64 `json:"rental_yield"`
	RentIncreaseRate float64 `json:"rent_increase_rate"`

	MortgageRate       float64 `json:"mortgage_rate"`
	EarlyRepaymentRate float64 `json:"early_repayment_rate"`

	AppreciationRate float64 `json:"appreciation_rate"`

	PortfolioReturnRate float64 `json:"portfolio_return_rate"`

	RiskFreeRate        float64 `json:"risk_free_rate"`
	CapitalGainsTaxRate float64 `json:"capital_gains_tax_rate"`
}

// DefaultAssumptions returns the moderate market profile.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RentalYield:         0.028,
		RentIncreaseRate:    0.03,
		MortgageRate:        0.048,
		EarlyRepaymentRate:  0.035,
		AppreciationRate:    0.04,
		PortfolioReturnRate: 0.07,
		RiskFreeRate:        0.03,
		CapitalGainsTaxRate: 0.25,
	}
}

// Restrictions are the policy thresholds a scenario is validated against.
// Violations annotate the result; they never abort the calculation.
type Restrictions struct {
	MaxMortgageToIncomeRatio float64 `json:"max_mortgage_to_income_ratio"`
	MinDownPaymentPercentage float64 `json:"min_down_payment_percentage"`
	MaxLoanToValue           float64 `json:"max_loan_to_value"`
	MaxMortgagePercentage    float64 `json:"max_mortgage_percentage"`
	MaxUrbanRenewalValue     float64 `json:"max_urban_renewal_value"`
	RequirePositiveCashFlow  bool    `json:"require_positive_cash_flow"`
}

// DefaultRestrictions returns the standard policy set.
func DefaultRestrictions() Restrictions {
	return Restrictions{
		MaxMortgageToIncomeRatio: 0.3,
		MinDownPaymentPercentage: 0.0,
		MaxLoanToValue:           0.75,
		MaxMortgagePercentage:    0.75,
		MaxUrbanRenewalValue:     MaxUrbanRenewalValue,
		RequirePositiveCashFlow:  false,
	}
}

// LoanMetrics is the stage 1 output: the mortgage economics.
type LoanMetrics struct {
	LoanAmount            float64 `json:"loan_amount"`
	LeverageRatio         float64 `json:"leverage_ratio"`
	EquityRatio           float64 `json:"equity_ratio"`
	LeverageMultiplier    float64 `json:"leverage_multiplier"` // +Inf when equity is zero
	MonthlyPayment        float64 `json:"monthly_payment"`
	TotalPayments         float64 `json:"total_payments"`
	TotalInterest         float64 `json:"total_interest"`
	AvgMonthlyInterest    float64 `json:"avg_monthly_interest"`
	MortgageToIncomeRatio float64 `json:"mortgage_to_income_ratio"`
}

// CashFlowMetrics is the stage 2 output: monthly economics of holding the
// property.
type CashFlowMetrics struct {
	MonthlyRent          float64 `json:"monthly_rent"`
	RentalYield          float64 `json:"rental_yield"` // actual, from rent back to price
	MonthlyNetCashFlow   float64 `json:"monthly_net_cash_flow"`
	MonthlyInterestFlow  float64 `json:"monthly_interest_flow"`
	AvgPrincipalPayment  float64 `json:"avg_principal_payment"` // negative, it reduces debt
	LeveragedRentalYield float64 `json:"leveraged_rental_yield"`
	NetLeveragedYield    float64 `json:"net_leveraged_yield"`
}

// AppreciationMetrics is the stage 3 output: value growth and the returns
// it implies.
type AppreciationMetrics struct {
	PropertyAppreciation     float64 `json:"property_appreciation"`
	UrbanRenewalAppreciation float64 `json:"urban_renewal_appreciation"`
	TotalAppreciation        float64 `json:"total_appreciation"`
	SaleValue                float64 `json:"sale_value"`
	TotalReturnRate          float64 `json:"total_return_rate"`
	AnnualizedReturn         float64 `json:"annualized_return"`
	LeveragedReturn          float64 `json:"leveraged_return"`
	NetAnnualReturn          float64 `json:"net_annual_return"`
}

// EarlyRepaymentMetrics is the stage 4 output: the exit economics,
// including the bank's early-repayment penalty when selling before the
// mortgage amortizes.
type EarlyRepaymentMetrics struct {
	RemainingMortgage     float64 `json:"remaining_mortgage"`
	EarlyRepaymentPenalty float64 `json:"early_repayment_penalty"`
	TotalDebtToBank       float64 `json:"total_debt_to_bank"`
	ProceedsMinusDebt     float64 `json:"proceeds_minus_debt"`
	NetGainProperty       float64 `json:"net_gain_property"`
}

// PortfolioMetrics is the stage 5 output: the counterfactual of investing
// the same capital and monthly surplus in a market portfolio.
type PortfolioMetrics struct {
	CashInPortfolio        float64 `json:"cash_in_portfolio"`
	PortfolioInitialGrowth float64 `json:"portfolio_initial_growth"`
	MonthlyDeposits        float64 `json:"monthly_deposits"`
	AccumulatedDeposits    float64 `json:"accumulated_deposits"`
	TotalPortfolioValue    float64 `json:"total_portfolio_value"`
	PortfolioAfterTax      float64 `json:"portfolio_after_tax"`
	NetPortfolioProfit     float64 `json:"net_portfolio_profit"`
}

// TaxMetrics is the stage 6 output: purchase tax at acquisition plus
// capital-gains tax at sale.
type TaxMetrics struct {
	PurchaseTax         float64 `json:"purchase_tax"`
	PurchaseTaxRate     float64 `json:"purchase_tax_rate"`
	CapitalGains        float64 `json:"capital_gains"`
	CapitalGainsTax     float64 `json:"capital_gains_tax"`
	TotalTaxes          float64 `json:"total_taxes"`
	NetProfitAfterTaxes float64 `json:"net_profit_after_taxes"`
}

// Result aggregates everything a single calculation produced.
type Result struct {
	Inputs      Inputs      `json:"inputs"`
	Assumptions Assumptions `json:"assumptions"`

	Loan           LoanMetrics           `json:"loan_metrics"`
	CashFlow       CashFlowMetrics       `json:"cash_flow_metrics"`
	Appreciation   AppreciationMetrics   `json:"appreciation_metrics"`
	EarlyRepayment EarlyRepaymentMetrics `json:"early_repayment_metrics"`
	Portfolio      PortfolioMetrics      `json:"portfolio_metrics"`
	Taxes          TaxMetrics            `json:"tax_metrics"`

	TotalValueAtSale float64 `json:"total_value_at_sale"`
	TotalProfit      float64 `json:"total_profit"`
	AnnualReturn     float64 `json:"annual_return"`

	IsValid          bool     `json:"is_valid"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}
