package cache

import (
	"strings"
	"sync"
	"testing"

	"mortgage_scenario/pkg/core/scenario"
)

func sampleInputs() scenario.Inputs {
	return scenario.Inputs{
		PropertyPrice:     2000000,
		DownPayment:       1000000,
		AvailableCash:     2000000,
		MonthlyIncome:     36000,
		MonthlyAvailable:  10000,
		MortgageTermYears: 10,
		YearsUntilSale:    10,
		IsFirstHouse:      true,
	}
}

func TestResultKeyDeterministic(t *testing.T) {
	inputs := sampleInputs()
	assumptions := scenario.DefaultAssumptions()
	restrictions := scenario.DefaultRestrictions()

	first := ResultKey(inputs, assumptions, restrictions)
	second := ResultKey(inputs, assumptions, restrictions)
	if first != second {
		t.Errorf("same parameters hashed differently: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "scenario:") {
		t.Errorf("key missing scenario prefix: %q", first)
	}
}

func TestResultKeySensitiveToInputs(t *testing.T) {
	assumptions := scenario.DefaultAssumptions()
	restrictions := scenario.DefaultRestrictions()
	base := ResultKey(sampleInputs(), assumptions, restrictions)

	changed := sampleInputs()
	changed.PropertyPrice = 2000001
	if ResultKey(changed, assumptions, restrictions) == base {
		t.Error("changing property price did not change the key")
	}
}

func TestResultKeySensitiveToAssumptions(t *testing.T) {
	inputs := sampleInputs()
	restrictions := scenario.DefaultRestrictions()
	base := ResultKey(inputs, scenario.DefaultAssumptions(), restrictions)

	changed := scenario.DefaultAssumptions()
	changed.MortgageRate += 0.001
	if ResultKey(inputs, changed, restrictions) == base {
		t.Error("changing mortgage rate did not change the key")
	}
}

func TestResultKeySensitiveToRestrictions(t *testing.T) {
	inputs := sampleInputs()
	assumptions := scenario.DefaultAssumptions()
	base := ResultKey(inputs, assumptions, scenario.DefaultRestrictions())

	changed := scenario.DefaultRestrictions()
	changed.MaxLoanToValue = 0.90
	if ResultKey(inputs, assumptions, changed) == base {
		t.Error("changing the loan-to-value policy did not change the key")
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get returned ok for missing key")
	}

	if err := c.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, ok := c.Get("k")
	if !ok || val != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", val, ok)
	}

	if err := c.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite Set failed: %v", err)
	}
	if val, _ := c.Get("k"); val != "v2" {
		t.Errorf("overwrite not visible, got %q", val)
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("shared", "x")
				c.Get("shared")
			}
		}()
	}
	wg.Wait()

	if val, ok := c.Get("shared"); !ok || val != "x" {
		t.Errorf("final state wrong: (%q, %v)", val, ok)
	}
}
