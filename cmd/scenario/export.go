package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mortgage_scenario/pkg/core/export"
)

type exportCmd struct {
	flags scenarioFlags
	out   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "calculate a scenario and write it as CSV" }
func (*exportCmd) Usage() string {
	return `scenario export -price <amount> -down <amount> -cash <amount> -income <amount> -o <file>

  Runs the full scenario calculation and writes the metric table as CSV,
  without printing it to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.StringVar(&c.out, "o", "", "Destination CSV file (required)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.out == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		return subcommands.ExitUsageError
	}

	result, err := c.flags.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if err := export.NewExporter(result).WriteFile(c.out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Results written to %s\n", c.out)
	return subcommands.ExitSuccess
}
