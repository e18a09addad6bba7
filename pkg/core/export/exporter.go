// Package export flattens a scenario result into (name, value,
// description) rows for spreadsheet-style output.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"mortgage_scenario/pkg/core/scenario"
)

// Row is one exported line: variable name, formatted value, description.
type Row struct {
	Name        string
	Value       string
	Description string
}

// Currency formats a monetary amount with thousands separators and no
// decimal places.
func Currency(v float64) string {
	if !isFinite(v) {
		return "inf"
	}
	return groupThousands(decimal.NewFromFloat(v).StringFixed(0))
}

// Percent formats a decimal rate as a percentage with two decimals.
func Percent(v float64) string {
	if !isFinite(v) {
		return "inf"
	}
	return decimal.NewFromFloat(v * 100).StringFixed(2) + "%"
}

// Number formats a plain value with two decimals and thousands separators.
func Number(v float64) string {
	if !isFinite(v) {
		return "inf"
	}
	return groupThousands(decimal.NewFromFloat(v).StringFixed(2))
}

// decimal.NewFromFloat panics on NaN and infinities, which a zero-equity
// scenario produces for the leverage multiplier.
func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Exporter turns one scenario result into export rows.
type Exporter struct {
	result scenario.Result
}

// NewExporter wraps a computed result for export.
func NewExporter(result scenario.Result) *Exporter {
	return &Exporter{result: result}
}

// Rows returns every export row, grouped under section headers.
func (e *Exporter) Rows() []Row {
	var rows []Row
	section := func(title string) {
		rows = append(rows, Row{}, Row{Name: fmt.Sprintf("=== %s ===", title)})
	}
	add := func(name, value, description string) {
		rows = append(rows, Row{Name: name, Value: value, Description: description})
	}

	in := e.result.Inputs
	section("USER INPUTS")
	add("property_price", Currency(in.PropertyPrice), "Purchase price of the property")
	add("down_payment", Currency(in.DownPayment), "Equity/down payment amount")
	add("available_cash", Currency(in.AvailableCash), "Total cash available for investment")
	add("monthly_income", Currency(in.MonthlyIncome), "Monthly net income (for mortgage validation)")
	add("monthly_available", Currency(in.MonthlyAvailable), "Monthly amount available for investment")
	add("mortgage_term_years", strconv.Itoa(in.MortgageTermYears), "Duration of mortgage in years")
	add("years_until_sale", strconv.Itoa(in.YearsUntilSale), "Number of years until property will be sold")
	add("urban_renewal_value", Currency(in.UrbanRenewalValue), "Added value from urban renewal project")
	add("is_first_house", strconv.FormatBool(in.IsFirstHouse), "Whether this is the buyer's only residence")
	add("improvement_costs", Currency(in.ImprovementCosts), "Improvement costs deductible from capital gains")

	a := e.result.Assumptions
	section("ASSUMPTIONS")
	add("rental_yield", Percent(a.RentalYield), "Annual rental yield as percentage of property value")
	add("mortgage_rate", Percent(a.MortgageRate), "Annual mortgage interest rate")
	add("appreciation_rate", Percent(a.AppreciationRate), "Annual property appreciation rate")
	add("rent_increase_rate", Percent(a.RentIncreaseRate), "Annual rent increase rate")
	add("portfolio_return_rate", Percent(a.PortfolioReturnRate), "Annual return for alternative portfolio investment")
	add("risk_free_rate", Percent(a.RiskFreeRate), "Risk-free rate for discounting")
	add("early_repayment_rate", Percent(a.EarlyRepaymentRate), "Interest rate at early mortgage repayment")
	add("capital_gains_tax_rate", Percent(a.CapitalGainsTaxRate), "Capital gains tax rate")

	loan := e.result.Loan
	section("LOAN METRICS")
	add("loan_amount", Currency(loan.LoanAmount), "Total mortgage/loan amount")
	add("leverage_ratio", Percent(loan.LeverageRatio), "Loan as fraction of property price")
	add("equity_ratio", Percent(loan.EquityRatio), "Down payment as fraction of property price")
	add("leverage_multiplier", Number(loan.LeverageMultiplier)+"x", "Leverage effect multiplier (1/equity_ratio)")
	add("monthly_payment", Currency(loan.MonthlyPayment), "Monthly mortgage payment")
	add("total_payments", Currency(loan.TotalPayments), "Total mortgage payments over loan term")
	add("total_interest", Currency(loan.TotalInterest), "Total interest paid over loan term")
	add("avg_monthly_interest", Currency(loan.AvgMonthlyInterest), "Average monthly interest payment")
	add("mortgage_to_income_ratio", Percent(loan.MortgageToIncomeRatio), "Monthly payment as percentage of monthly income")

	cf := e.result.CashFlow
	section("CASH FLOW METRICS")
	add("monthly_rent", Currency(cf.MonthlyRent), "Monthly rental income")
	add("rental_yield_actual", Percent(cf.RentalYield), "Actual annual rental yield")
	add("monthly_net_cash_flow", Currency(cf.MonthlyNetCashFlow), "Monthly cash flow (rent - mortgage payment)")
	add("monthly_interest_flow", Currency(cf.MonthlyInterestFlow), "Monthly cash flow from interest perspective")
	add("avg_principal_payment", Currency(cf.AvgPrincipalPayment), "Average monthly principal payment")
	add("leveraged_rental_yield", Percent(cf.LeveragedRentalYield), "Rental yield multiplied by leverage")
	add("net_leveraged_yield", Percent(cf.NetLeveragedYield), "Leveraged yield minus mortgage rate")

	app := e.result.Appreciation
	section("APPRECIATION METRICS")
	add("property_appreciation", Currency(app.PropertyAppreciation), "Property value increase over holding period")
	add("urban_renewal_appreciation", Currency(app.UrbanRenewalAppreciation), "Urban renewal value increase over holding period")
	add("total_appreciation", Currency(app.TotalAppreciation), "Total appreciation (property + urban renewal)")
	add("sale_value", Currency(app.SaleValue), "Expected sale value at end of period")
	add("total_return_rate", Percent(app.TotalReturnRate), "Total return as percentage")
	add("annualized_return", Percent(app.AnnualizedReturn), "Annualized return rate")
	add("leveraged_return", Percent(app.LeveragedReturn), "Annualized return multiplied by leverage")
	add("net_annual_return", Percent(app.NetAnnualReturn), "Net annual return after financing costs")

	er := e.result.EarlyRepayment
	section("EARLY REPAYMENT METRICS")
	add("remaining_mortgage", Currency(er.RemainingMortgage), "Remaining mortgage balance at sale")
	add("early_repayment_penalty", Currency(er.EarlyRepaymentPenalty), "Penalty for early mortgage repayment")
	add("total_debt_to_bank", Currency(er.TotalDebtToBank), "Total debt to bank at sale")
	add("proceeds_minus_debt", Currency(er.ProceedsMinusDebt), "Sale proceeds minus bank debt")
	add("net_gain_property", Currency(er.NetGainProperty), "Net gain from property investment")

	pm := e.result.Portfolio
	section("PORTFOLIO METRICS")
	add("cash_in_portfolio", Currency(pm.CashInPortfolio), "Cash invested in alternative portfolio")
	add("portfolio_initial_growth", Currency(pm.PortfolioInitialGrowth), "Growth of initial portfolio investment")
	add("monthly_deposits", Currency(pm.MonthlyDeposits), "Monthly deposits to portfolio")
	add("accumulated_deposits", Currency(pm.AccumulatedDeposits), "Value accumulated from monthly deposits")
	add("total_portfolio_value", Currency(pm.TotalPortfolioValue), "Total portfolio value at sale time")
	add("portfolio_after_tax", Currency(pm.PortfolioAfterTax), "Portfolio value after capital gains tax")
	add("net_portfolio_profit", Currency(pm.NetPortfolioProfit), "Net profit from portfolio investment")

	tx := e.result.Taxes
	section("TAX METRICS")
	add("purchase_tax", Currency(tx.PurchaseTax), "Purchase tax paid when buying the property")
	add("purchase_tax_rate", Percent(tx.PurchaseTaxRate), "Effective purchase tax rate")
	add("capital_gains", Currency(tx.CapitalGains), "Capital gain from property sale")
	add("capital_gains_tax", Currency(tx.CapitalGainsTax), "Capital gains tax paid when selling")
	add("total_taxes", Currency(tx.TotalTaxes), "Total taxes paid (purchase + capital gains)")
	add("net_profit_after_taxes", Currency(tx.NetProfitAfterTaxes), "Property net profit after all taxes")

	section("FINAL SUMMARY")
	add("total_value_at_sale", Currency(e.result.TotalValueAtSale), "Total combined value at time of sale")
	add("total_profit", Currency(e.result.TotalProfit), "Total profit from investment")
	add("annual_return", Percent(e.result.AnnualReturn), "Overall annualized return rate")
	add("is_valid", strconv.FormatBool(e.result.IsValid), "Whether scenario passes all restrictions")

	if len(e.result.ValidationErrors) > 0 {
		section("VALIDATION ERRORS")
		for i, msg := range e.result.ValidationErrors {
			add(fmt.Sprintf("error_%d", i+1), msg, "Validation error message")
		}
	}

	return rows
}

// ToCSV writes the rows with a header line to w.
func (e *Exporter) ToCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Variable Name", "Value", "Description"}); err != nil {
		return err
	}
	for _, row := range e.Rows() {
		if err := cw.Write([]string{row.Name, row.Value, row.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile exports the scenario as CSV at path, creating parent
// directories as needed.
func (e *Exporter) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	return e.ToCSV(f)
}

// String renders the CSV in memory; handy for tests and stdout.
func (e *Exporter) String() string {
	var b strings.Builder
	e.ToCSV(&b)
	return b.String()
}
