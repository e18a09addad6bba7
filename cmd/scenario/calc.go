package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mortgage_scenario/pkg/core/config"
	"mortgage_scenario/pkg/core/export"
	"mortgage_scenario/pkg/core/scenario"
)

// scenarioFlags are the input flags shared by calc and report.
type scenarioFlags struct {
	price            float64
	downPayment      float64
	cash             float64
	income           float64
	monthlyAvailable float64
	termYears        int
	saleYears        int
	urbanRenewal     float64
	firstHouse       bool
	improvements     float64

	preset          string
	assumptionsFile string
}

func (s *scenarioFlags) register(f *flag.FlagSet) {
	f.Float64Var(&s.price, "price", 0, "Property price")
	f.Float64Var(&s.downPayment, "down", 0, "Down payment")
	f.Float64Var(&s.cash, "cash", 0, "Total available cash")
	f.Float64Var(&s.income, "income", 0, "Net monthly income")
	f.Float64Var(&s.monthlyAvailable, "monthly", 0, "Free cash per month for investing")
	f.IntVar(&s.termYears, "term", 30, "Mortgage term in years")
	f.IntVar(&s.saleYears, "sale", 10, "Years until sale")
	f.Float64Var(&s.urbanRenewal, "renewal", 0, "Expected urban renewal value uplift")
	f.BoolVar(&s.firstHouse, "first-house", true, "Purchase taxed as a first house")
	f.Float64Var(&s.improvements, "improvements", 0, "Improvement costs, deductible at sale")
	f.StringVar(&s.preset, "preset", "", "Assumptions preset: conservative, moderate, aggressive")
	f.StringVar(&s.assumptionsFile, "assumptions", "", "YAML file overriding market assumptions")
}

func (s *scenarioFlags) run() (scenario.Result, error) {
	inputs := scenario.Inputs{
		PropertyPrice:     s.price,
		DownPayment:       s.downPayment,
		AvailableCash:     s.cash,
		MonthlyIncome:     s.income,
		MonthlyAvailable:  s.monthlyAvailable,
		MortgageTermYears: s.termYears,
		YearsUntilSale:    s.saleYears,
		UrbanRenewalValue: s.urbanRenewal,
		IsFirstHouse:      s.firstHouse,
		ImprovementCosts:  s.improvements,
	}

	assumptions := scenario.DefaultAssumptions()
	if s.preset != "" {
		a, err := config.AssumptionsByName(s.preset)
		if err != nil {
			return scenario.Result{}, err
		}
		assumptions = a
	}
	if s.assumptionsFile != "" {
		a, err := config.LoadAssumptions(s.assumptionsFile)
		if err != nil {
			return scenario.Result{}, err
		}
		assumptions = a
	}

	return scenario.Calculate(inputs, &assumptions, nil)
}

type calcCmd struct {
	flags scenarioFlags
	out   string
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "calculate a property purchase scenario" }
func (*calcCmd) Usage() string {
	return `scenario calc -price <amount> -down <amount> -cash <amount> -income <amount> [flags]

  Runs the full scenario calculation and prints the metric table.
  With -o, also writes the table as CSV.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.StringVar(&c.out, "o", "", "Write the results as CSV to this file")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	result, err := c.flags.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	exporter := export.NewExporter(result)
	fmt.Print(exporter.String())

	if c.out != "" {
		if err := exporter.WriteFile(c.out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("\nResults written to %s\n", c.out)
	}

	return subcommands.ExitSuccess
}
