package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mortgage_scenario/pkg/core/advisor"
	"mortgage_scenario/pkg/core/report"
)

type reportCmd struct {
	flags  scenarioFlags
	out    string
	advise bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render a scenario as a markdown report" }
func (*reportCmd) Usage() string {
	return `scenario report -price <amount> -down <amount> -cash <amount> -income <amount> [flags]

  Calculates the scenario and renders a markdown report. With -advise,
  appends a model-generated narrative (requires GEMINI_API_KEY or
  DEEPSEEK_API_KEY).
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.StringVar(&c.out, "o", "", "Write the report to this file instead of stdout")
	f.BoolVar(&c.advise, "advise", false, "Append a model-generated narrative")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	result, err := c.flags.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	narrative := ""
	if c.advise {
		adv := advisor.New(nil)
		text, err := adv.Narrate(ctx, result.Inputs, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: advisor unavailable: %v\n", err)
		} else {
			narrative = text
		}
	}

	md, err := report.Render(result, narrative)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if err := os.WriteFile(c.out, []byte(md), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Report written to %s\n", c.out)
		return subcommands.ExitSuccess
	}

	fmt.Print(md)
	return subcommands.ExitSuccess
}
