package scenario

import "fmt"

// Validate checks the scenario against its restrictions and returns the
// verdict plus one descriptive message per violated policy. Violations do
// not stop the pipeline; the result is simply marked invalid.
func (c *Calculator) Validate() (bool, []string) {
	var errs []string

	loan := c.LoanMetrics()
	cf := c.CashFlow(loan)

	downPaymentPct := c.inputs.DownPayment / c.inputs.PropertyPrice
	if downPaymentPct < c.restrictions.MinDownPaymentPercentage {
		errs = append(errs, fmt.Sprintf(
			"Down payment %.1f%% is below minimum %.1f%%",
			downPaymentPct*100, c.restrictions.MinDownPaymentPercentage*100))
	}

	if loan.LeverageRatio > c.restrictions.MaxLoanToValue {
		errs = append(errs, fmt.Sprintf(
			"Loan-to-value %.1f%% exceeds maximum %.1f%%",
			loan.LeverageRatio*100, c.restrictions.MaxLoanToValue*100))
	}

	mortgagePct := loan.LoanAmount / c.inputs.PropertyPrice
	if mortgagePct > c.restrictions.MaxMortgagePercentage {
		errs = append(errs, fmt.Sprintf(
			"Mortgage %.1f%% of property value exceeds maximum %.1f%%",
			mortgagePct*100, c.restrictions.MaxMortgagePercentage*100))
	}

	if loan.MortgageToIncomeRatio > c.restrictions.MaxMortgageToIncomeRatio {
		errs = append(errs, fmt.Sprintf(
			"Mortgage payment %.1f%% of income exceeds maximum %.1f%% (payment: %.0f, income: %.0f)",
			loan.MortgageToIncomeRatio*100, c.restrictions.MaxMortgageToIncomeRatio*100,
			loan.MonthlyPayment, c.inputs.MonthlyIncome))
	}

	if c.restrictions.RequirePositiveCashFlow && cf.MonthlyNetCashFlow < 0 {
		errs = append(errs, fmt.Sprintf(
			"Negative cash flow: %.0f/month", cf.MonthlyNetCashFlow))
	}

	if c.inputs.UrbanRenewalValue > c.restrictions.MaxUrbanRenewalValue {
		errs = append(errs, fmt.Sprintf(
			"Urban renewal value %.0f exceeds maximum %.0f",
			c.inputs.UrbanRenewalValue, c.restrictions.MaxUrbanRenewalValue))
	}

	return len(errs) == 0, errs
}
