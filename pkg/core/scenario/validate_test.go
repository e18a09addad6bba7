package scenario

import (
	"strings"
	"testing"
)

func TestValidatePasses(t *testing.T) {
	a := referenceAssumptions()
	c := NewCalculator(referenceInputs(), &a, nil)
	ok, errs := c.Validate()
	if !ok || len(errs) != 0 {
		t.Errorf("Expected clean validation, got %v", errs)
	}
}

func TestValidateLoanToValue(t *testing.T) {
	// 10% down on defaults breaches the 75% LTV ceiling.
	in := referenceInputs()
	in.DownPayment = 200_000
	c := NewCalculator(in, nil, nil)
	ok, errs := c.Validate()
	if ok {
		t.Fatalf("Expected validation failure")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "Loan-to-value") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a loan-to-value message, got %v", errs)
	}
}

func TestValidateMortgageToIncome(t *testing.T) {
	// A small income makes the payment breach the 30% ratio. The message
	// carries the actual payment and income.
	in := referenceInputs()
	in.MonthlyIncome = 20_000
	a := referenceAssumptions()
	c := NewCalculator(in, &a, nil)
	ok, errs := c.Validate()
	if ok {
		t.Fatalf("Expected validation failure")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "income") && strings.Contains(e, "20000") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a mortgage-to-income message with amounts, got %v", errs)
	}
}

func TestValidateMinDownPayment(t *testing.T) {
	in := referenceInputs()
	in.DownPayment = 500_000
	r := DefaultRestrictions()
	r.MinDownPaymentPercentage = 0.30
	c := NewCalculator(in, nil, &r)
	ok, errs := c.Validate()
	if ok {
		t.Fatalf("Expected validation failure")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "Down payment") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a down-payment message, got %v", errs)
	}
}

func TestValidatePositiveCashFlowPolicy(t *testing.T) {
	// Off by default, the deficit passes; switched on it fails.
	in := referenceInputs()
	a := referenceAssumptions()

	c := NewCalculator(in, &a, nil)
	if ok, errs := c.Validate(); !ok {
		t.Errorf("Default policy should allow negative cash flow: %v", errs)
	}

	r := DefaultRestrictions()
	r.RequirePositiveCashFlow = true
	c = NewCalculator(in, &a, &r)
	ok, errs := c.Validate()
	if ok {
		t.Fatalf("Expected validation failure with positive-cash-flow policy")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "Negative cash flow") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a cash-flow message, got %v", errs)
	}
}

func TestValidateCollectsMultipleViolations(t *testing.T) {
	// Zero down payment breaches LTV, mortgage percentage and the income
	// ratio at once.
	in := referenceInputs()
	in.DownPayment = 0
	in.MonthlyIncome = 15_000
	c := NewCalculator(in, nil, nil)
	ok, errs := c.Validate()
	if ok {
		t.Fatalf("Expected validation failure")
	}
	if len(errs) < 3 {
		t.Errorf("Expected at least 3 violations, got %d: %v", len(errs), errs)
	}
}
