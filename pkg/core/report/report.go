// Package report renders a computed scenario as a markdown document,
// optionally appending the advisor's narrative.
package report

import (
	"fmt"
	"strings"
	"time"

	"mortgage_scenario/pkg/core/export"
	"mortgage_scenario/pkg/core/scenario"
	"mortgage_scenario/pkg/core/utils"
)

// Render produces the markdown report for a result. narrative may be empty.
func Render(result scenario.Result, narrative string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Property Scenario Report\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Inputs\n\n")
	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Property price | %s |\n", export.Currency(result.Inputs.PropertyPrice))
	fmt.Fprintf(&b, "| Down payment | %s |\n", export.Currency(result.Inputs.DownPayment))
	fmt.Fprintf(&b, "| Available cash | %s |\n", export.Currency(result.Inputs.AvailableCash))
	fmt.Fprintf(&b, "| Monthly income | %s |\n", export.Currency(result.Inputs.MonthlyIncome))
	fmt.Fprintf(&b, "| Mortgage term | %d years |\n", result.Inputs.MortgageTermYears)
	fmt.Fprintf(&b, "| Sale after | %d years |\n", result.Inputs.YearsUntilSale)
	fmt.Fprintf(&b, "| First house | %v |\n", result.Inputs.IsFirstHouse)
	if result.Inputs.UrbanRenewalValue > 0 {
		fmt.Fprintf(&b, "| Urban renewal value | %s |\n", export.Currency(result.Inputs.UrbanRenewalValue))
	}

	fmt.Fprintf(&b, "\n## Mortgage\n\n")
	fmt.Fprintf(&b, "- Loan amount: %s (leverage ratio %s)\n", export.Currency(result.Loan.LoanAmount), export.Percent(result.Loan.LeverageRatio))
	fmt.Fprintf(&b, "- Monthly payment: %s\n", export.Currency(result.Loan.MonthlyPayment))
	fmt.Fprintf(&b, "- Total interest over the term: %s\n", export.Currency(result.Loan.TotalInterest))
	fmt.Fprintf(&b, "- Mortgage to income ratio: %s\n", export.Percent(result.Loan.MortgageToIncomeRatio))

	fmt.Fprintf(&b, "\n## Holding Period\n\n")
	fmt.Fprintf(&b, "- Monthly rent: %s\n", export.Currency(result.CashFlow.MonthlyRent))
	fmt.Fprintf(&b, "- Net monthly cash flow: %s\n", export.Currency(result.CashFlow.MonthlyNetCashFlow))
	fmt.Fprintf(&b, "- Sale value: %s (total appreciation %s)\n", export.Currency(result.Appreciation.SaleValue), export.Currency(result.Appreciation.TotalAppreciation))

	fmt.Fprintf(&b, "\n## Exit\n\n")
	fmt.Fprintf(&b, "- Remaining mortgage at sale: %s\n", export.Currency(result.EarlyRepayment.RemainingMortgage))
	fmt.Fprintf(&b, "- Early repayment penalty: %s\n", export.Currency(result.EarlyRepayment.EarlyRepaymentPenalty))
	fmt.Fprintf(&b, "- Purchase tax: %s, capital gains tax: %s\n", export.Currency(result.Taxes.PurchaseTax), export.Currency(result.Taxes.CapitalGainsTax))
	fmt.Fprintf(&b, "- Net property gain after taxes: %s\n", export.Currency(result.Taxes.NetProfitAfterTaxes))

	fmt.Fprintf(&b, "\n## Market Portfolio Counterfactual\n\n")
	fmt.Fprintf(&b, "- Cash invested from day one: %s\n", export.Currency(result.Portfolio.CashInPortfolio))
	fmt.Fprintf(&b, "- Monthly deposits: %s\n", export.Currency(result.Portfolio.MonthlyDeposits))
	fmt.Fprintf(&b, "- Portfolio value after tax: %s\n", export.Currency(result.Portfolio.PortfolioAfterTax))
	fmt.Fprintf(&b, "- Net portfolio profit: %s\n", export.Currency(result.Portfolio.NetPortfolioProfit))

	fmt.Fprintf(&b, "\n## Bottom Line\n\n")
	fmt.Fprintf(&b, "- Total value at sale: %s\n", export.Currency(result.TotalValueAtSale))
	fmt.Fprintf(&b, "- Total profit: %s\n", export.Currency(result.TotalProfit))
	fmt.Fprintf(&b, "- Annualized return: %s\n", export.Percent(result.AnnualReturn))

	if len(result.ValidationErrors) > 0 {
		fmt.Fprintf(&b, "\n## Validation Warnings\n\n")
		for _, e := range result.ValidationErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	if narrative != "" {
		fmt.Fprintf(&b, "\n## Advisor Notes\n\n%s\n", utils.CleanMarkdown(narrative))
	}

	out := b.String()
	if !utils.ValidateMarkdown(out) {
		return "", fmt.Errorf("generated report failed markdown validation")
	}
	return out, nil
}
