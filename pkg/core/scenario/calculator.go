package scenario

import (
	"math"

	"mortgage_scenario/pkg/core/financial"
	"mortgage_scenario/pkg/core/tax"
)

// Calculator runs the scenario stage pipeline. It is immutable after
// construction; the only cached derived value is the monthly rent.
type Calculator struct {
	inputs       Inputs
	assumptions  Assumptions
	restrictions Restrictions
	monthlyRent  float64
}

// NewCalculator builds a calculator from validated inputs. Nil assumptions
// or restrictions fall back to the defaults.
func NewCalculator(inputs Inputs, assumptions *Assumptions, restrictions *Restrictions) *Calculator {
	a := DefaultAssumptions()
	if assumptions != nil {
		a = *assumptions
	}
	r := DefaultRestrictions()
	if restrictions != nil {
		r = *restrictions
	}

	return &Calculator{
		inputs:       inputs,
		assumptions:  a,
		restrictions: r,
		monthlyRent:  inputs.MonthlyRent(a.RentalYield),
	}
}

// MonthlyRent exposes the cached rent derived at construction.
func (c *Calculator) MonthlyRent() float64 { return c.monthlyRent }

// LoanMetrics computes stage 1: the mortgage economics. A full-cash
// purchase short-circuits to a zero-loan record.
func (c *Calculator) LoanMetrics() LoanMetrics {
	loanAmount := c.inputs.MortgageAmount()

	if loanAmount <= 0 {
		return LoanMetrics{
			LoanAmount:         0,
			LeverageRatio:      0,
			EquityRatio:        1,
			LeverageMultiplier: 1,
		}
	}

	leverageRatio := loanAmount / c.inputs.PropertyPrice
	equityRatio := 1 - leverageRatio
	leverageMultiplier := math.Inf(1)
	if equityRatio > 0 {
		leverageMultiplier = 1 / equityRatio
	}

	numPayments := c.inputs.MortgageTermYears * 12
	monthlyPayment := financial.Pmt(c.assumptions.MortgageRate, numPayments, loanAmount)
	totalPayments := monthlyPayment * float64(numPayments)
	totalInterest := totalPayments - loanAmount

	avgMonthlyInterest := 0.0
	if numPayments > 0 {
		avgMonthlyInterest = totalInterest / float64(numPayments)
	}

	mortgageToIncome := 0.0
	if c.inputs.MonthlyIncome > 0 {
		mortgageToIncome = monthlyPayment / c.inputs.MonthlyIncome
	}

	return LoanMetrics{
		LoanAmount:            loanAmount,
		LeverageRatio:         leverageRatio,
		EquityRatio:           equityRatio,
		LeverageMultiplier:    leverageMultiplier,
		MonthlyPayment:        monthlyPayment,
		TotalPayments:         totalPayments,
		TotalInterest:         totalInterest,
		AvgMonthlyInterest:    avgMonthlyInterest,
		MortgageToIncomeRatio: mortgageToIncome,
	}
}

// CashFlow computes stage 2 from the loan metrics.
func (c *Calculator) CashFlow(loan LoanMetrics) CashFlowMetrics {
	rentalYield := (c.monthlyRent * 12) / c.inputs.PropertyPrice
	netCashFlow := c.monthlyRent - loan.MonthlyPayment
	interestFlow := c.monthlyRent - loan.AvgMonthlyInterest

	// Negative by convention: principal payments reduce debt.
	avgPrincipal := 0.0
	if loan.LoanAmount > 0 && c.inputs.MortgageTermYears > 0 {
		avgPrincipal = -loan.LoanAmount / float64(12*c.inputs.MortgageTermYears)
	}

	leveragedYield := rentalYield * loan.LeverageMultiplier

	netLeveragedYield := leveragedYield
	if loan.LoanAmount > 0 {
		netLeveragedYield = leveragedYield - c.assumptions.MortgageRate
	}

	return CashFlowMetrics{
		MonthlyRent:          c.monthlyRent,
		RentalYield:          rentalYield,
		MonthlyNetCashFlow:   netCashFlow,
		MonthlyInterestFlow:  interestFlow,
		AvgPrincipalPayment:  avgPrincipal,
		LeveragedRentalYield: leveragedYield,
		NetLeveragedYield:    netLeveragedYield,
	}
}

// Appreciation computes stage 3: value growth over the holding period and
// the returns it implies on equity.
func (c *Calculator) Appreciation(loan LoanMetrics, cf CashFlowMetrics) AppreciationMetrics {
	years := float64(c.inputs.YearsUntilSale)

	propertyGrowth := financial.CompoundGrowth(c.inputs.PropertyPrice, c.assumptions.AppreciationRate, years)
	renewalGrowth := financial.CompoundGrowth(c.inputs.UrbanRenewalValue, c.assumptions.AppreciationRate, years)

	// The urban-renewal base value is added once; only its growth compounds.
	totalAppreciation := c.inputs.UrbanRenewalValue + propertyGrowth + renewalGrowth
	saleValue := c.inputs.PropertyPrice + totalAppreciation

	totalReturn := saleValue/c.inputs.PropertyPrice - 1
	annualized := financial.AnnualizedReturn(totalReturn, years)
	leveraged := annualized * loan.LeverageMultiplier

	netAnnual := leveraged + cf.LeveragedRentalYield
	if loan.LoanAmount > 0 {
		netAnnual -= c.assumptions.MortgageRate
	}

	return AppreciationMetrics{
		PropertyAppreciation:     propertyGrowth,
		UrbanRenewalAppreciation: renewalGrowth,
		TotalAppreciation:        totalAppreciation,
		SaleValue:                saleValue,
		TotalReturnRate:          totalReturn,
		AnnualizedReturn:         annualized,
		LeveragedReturn:          leveraged,
		NetAnnualReturn:          netAnnual,
	}
}

// EarlyRepayment computes stage 4: what the bank is owed when the property
// is sold, including the penalty for repaying before term.
//
// The remaining mortgage uses a linear share of total payments rather than
// an amortization-schedule balance. Known simplification, kept on purpose.
func (c *Calculator) EarlyRepayment(loan LoanMetrics, app AppreciationMetrics) EarlyRepaymentMetrics {
	yearsUntilSale := c.inputs.YearsUntilSale
	term := c.inputs.MortgageTermYears

	// No loan, or the mortgage fully amortizes before the sale.
	if loan.LoanAmount <= 0 || yearsUntilSale >= term {
		return EarlyRepaymentMetrics{
			RemainingMortgage:     0,
			EarlyRepaymentPenalty: 0,
			TotalDebtToBank:       0,
			ProceedsMinusDebt:     app.SaleValue,
			NetGainProperty:       app.SaleValue - c.inputs.DownPayment,
		}
	}

	remainingRatio := float64(term-yearsUntilSale) / float64(term)
	remainingMortgage := remainingRatio * loan.TotalPayments

	// Penalty: the bank's foregone interest, as the PV gap between the
	// contractual rate and the regulator's early-repayment reference rate.
	remainingMonths := (term - yearsUntilSale) * 12
	pvCurrent := financial.Pv(c.assumptions.MortgageRate/12, remainingMonths, loan.MonthlyPayment)
	pvReference := financial.Pv(c.assumptions.EarlyRepaymentRate/12, remainingMonths, loan.MonthlyPayment)
	penalty := math.Max(0, pvCurrent-pvReference)

	totalDebt := remainingMortgage + penalty
	proceeds := app.SaleValue - totalDebt

	return EarlyRepaymentMetrics{
		RemainingMortgage:     remainingMortgage,
		EarlyRepaymentPenalty: penalty,
		TotalDebtToBank:       totalDebt,
		ProceedsMinusDebt:     proceeds,
		NetGainProperty:       proceeds - c.inputs.DownPayment,
	}
}

// Portfolio computes stage 5: the market counterfactual. The property's
// monthly surplus or deficit feeds (or drains) the deposit stream, which is
// what makes the two strategies comparable on equal total outlay.
func (c *Calculator) Portfolio(cf CashFlowMetrics) PortfolioMetrics {
	years := float64(c.inputs.YearsUntilSale)
	months := c.inputs.YearsUntilSale * 12
	monthlyRate := c.assumptions.PortfolioReturnRate / 12

	cashInPortfolio := c.inputs.AvailableCash - c.inputs.DownPayment
	initialGrowth := financial.CompoundValue(cashInPortfolio, c.assumptions.PortfolioReturnRate, years)

	monthlyDeposits := c.inputs.MonthlyAvailable + cf.MonthlyNetCashFlow
	accumulated := financial.Fv(monthlyRate, months, -monthlyDeposits, 0)

	totalValue := initialGrowth + accumulated

	depositGains := accumulated - monthlyDeposits*float64(months)
	initialGains := initialGrowth - cashInPortfolio
	totalGains := depositGains + initialGains

	taxDue := 0.0
	if totalGains > 0 {
		taxDue = totalGains * c.assumptions.CapitalGainsTaxRate
	}
	afterTax := totalValue - taxDue

	totalContributions := cashInPortfolio + monthlyDeposits*float64(months)

	return PortfolioMetrics{
		CashInPortfolio:        cashInPortfolio,
		PortfolioInitialGrowth: initialGrowth,
		MonthlyDeposits:        monthlyDeposits,
		AccumulatedDeposits:    accumulated,
		TotalPortfolioValue:    totalValue,
		PortfolioAfterTax:      afterTax,
		NetPortfolioProfit:     afterTax - totalContributions,
	}
}

// Taxes computes stage 6: purchase tax at acquisition (progressive
// brackets keyed on the first-house flag) and capital-gains tax at sale.
func (c *Calculator) Taxes(app AppreciationMetrics, er EarlyRepaymentMetrics) TaxMetrics {
	purchaseTax := tax.PurchaseTax(c.inputs.PropertyPrice, c.inputs.IsFirstHouse)
	purchaseTaxRate := tax.PurchaseTaxRate(c.inputs.PropertyPrice, c.inputs.IsFirstHouse)

	capitalGain := app.SaleValue - c.inputs.PropertyPrice - purchaseTax - c.inputs.ImprovementCosts
	cgTax := tax.CapitalGainsTaxAt(
		app.SaleValue,
		c.inputs.PropertyPrice,
		purchaseTax,
		c.inputs.ImprovementCosts,
		c.assumptions.CapitalGainsTaxRate,
	)

	totalTaxes := purchaseTax + cgTax

	return TaxMetrics{
		PurchaseTax:         purchaseTax,
		PurchaseTaxRate:     purchaseTaxRate,
		CapitalGains:        capitalGain,
		CapitalGainsTax:     cgTax,
		TotalTaxes:          totalTaxes,
		NetProfitAfterTaxes: er.NetGainProperty - totalTaxes,
	}
}

// Calculate runs the full stage pipeline and returns the aggregate result.
// Policy violations annotate the result; they never abort.
func (c *Calculator) Calculate() Result {
	loan := c.LoanMetrics()
	cf := c.CashFlow(loan)
	app := c.Appreciation(loan, cf)
	er := c.EarlyRepayment(loan, app)
	portfolio := c.Portfolio(cf)
	taxes := c.Taxes(app, er)

	isValid, validationErrors := c.Validate()

	totalValueAtSale := er.ProceedsMinusDebt + portfolio.PortfolioAfterTax
	totalProfit := taxes.NetProfitAfterTaxes + portfolio.NetPortfolioProfit

	annualReturn := 0.0
	years := float64(c.inputs.YearsUntilSale)
	if c.inputs.AvailableCash > 0 && years > 0 {
		annualReturn = math.Pow(totalValueAtSale/c.inputs.AvailableCash, 1/years) - 1
	}

	return Result{
		Inputs:           c.inputs,
		Assumptions:      c.assumptions,
		Loan:             loan,
		CashFlow:         cf,
		Appreciation:     app,
		EarlyRepayment:   er,
		Portfolio:        portfolio,
		Taxes:            taxes,
		TotalValueAtSale: totalValueAtSale,
		TotalProfit:      totalProfit,
		AnnualReturn:     annualReturn,
		IsValid:          isValid,
		ValidationErrors: validationErrors,
	}
}

// Calculate is the primary entry point: validate the inputs, run the
// pipeline, return the aggregate result.
func Calculate(inputs Inputs, assumptions *Assumptions, restrictions *Restrictions) (Result, error) {
	validated, err := NewInputs(inputs)
	if err != nil {
		return Result{}, err
	}
	return NewCalculator(validated, assumptions, restrictions).Calculate(), nil
}
