package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mortgage_scenario/pkg/core/listing"
	"mortgage_scenario/pkg/core/store"
)

type scrapeCmd struct {
	city  string
	pages int
	out   string
	save  bool
}

func (*scrapeCmd) Name() string     { return "scrape" }
func (*scrapeCmd) Synopsis() string { return "scrape yad2 listings for a city" }
func (*scrapeCmd) Usage() string {
	return `scenario scrape -city <hebrew city name> [-pages <n>] [-o <file>] [-save]

  Fetches current for-sale listings and prints them as JSON. With -save
  the listings are also upserted into PostgreSQL (requires DATABASE_URL).
`
}

func (c *scrapeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.city, "city", "", "City name in Hebrew, e.g. תל אביב")
	f.IntVar(&c.pages, "pages", 1, "Number of result pages to fetch")
	f.StringVar(&c.out, "o", "", "Write listings as JSON to this file")
	f.BoolVar(&c.save, "save", false, "Persist listings to PostgreSQL")
}

func (c *scrapeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.city == "" {
		fmt.Fprintln(os.Stderr, "Error: -city is required")
		return subcommands.ExitUsageError
	}

	client := listing.NewClient(listing.DefaultClientConfig())
	listings, err := client.FetchPages(ctx, c.city, c.pages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d listings for %s\n", len(listings), c.city)

	if c.save {
		if err := store.InitDB(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer store.Close()
		saved, err := store.NewListingRepo().SaveAll(ctx, listings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Saved %d listings\n", saved)
	}

	encoded, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if err := os.WriteFile(c.out, encoded, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Listings written to %s\n", c.out)
		return subcommands.ExitSuccess
	}

	fmt.Println(string(encoded))
	return subcommands.ExitSuccess
}
