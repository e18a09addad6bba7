package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"mortgage_scenario/pkg/core/config"
	"mortgage_scenario/pkg/core/export"
	"mortgage_scenario/pkg/core/scenario"
)

type presetsCmd struct{}

func (*presetsCmd) Name() string     { return "presets" }
func (*presetsCmd) Synopsis() string { return "list the named assumption profiles" }
func (*presetsCmd) Usage() string {
	return `scenario presets

  Prints the conservative, moderate and aggressive market assumption
  profiles and the restriction sets.
`
}

func (*presetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *presetsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	profiles := []struct {
		name string
		a    scenario.Assumptions
	}{
		{"conservative", config.ConservativeAssumptions()},
		{"moderate", config.ModerateAssumptions()},
		{"aggressive", config.AggressiveAssumptions()},
	}

	for _, p := range profiles {
		fmt.Printf("%s:\n", p.name)
		fmt.Printf("  rental yield:          %s\n", export.Percent(p.a.RentalYield))
		fmt.Printf("  mortgage rate:         %s\n", export.Percent(p.a.MortgageRate))
		fmt.Printf("  appreciation rate:     %s\n", export.Percent(p.a.AppreciationRate))
		fmt.Printf("  portfolio return rate: %s\n", export.Percent(p.a.PortfolioReturnRate))
		fmt.Printf("  capital gains tax:     %s\n", export.Percent(p.a.CapitalGainsTaxRate))
		fmt.Println()
	}

	fmt.Println("restrictions: default, strict, lenient")
	for name, desc := range config.RestrictionDescriptions() {
		fmt.Printf("  %-30s %s\n", name, desc)
	}

	return subcommands.ExitSuccess
}
