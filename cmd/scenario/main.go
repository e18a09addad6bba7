// Command scenario is the command-line interface to the investment
// scenario engine.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(&calcCmd{}, "")
	commander.Register(&reportCmd{}, "")
	commander.Register(&presetsCmd{}, "")
	commander.Register(&scrapeCmd{}, "")
	commander.Register(&exportCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
