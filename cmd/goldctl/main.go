package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/atharvakonge/gold-tracker/internal/cli"
	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/logging"
	"github.com/google/subcommands"
)

func main() {
	cfg := cli.LoadConfig(os.Stderr)

	backendURL := flag.String("backend", cfg.BackendURL, "Base URL of the gold tracker backend.")
	plain := flag.Bool("plain", false, "Print markdown without terminal styling.")
	verbose := flag.Bool("v", false, "Log every backend call to stderr.")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := cli.NewApp(nil, os.Stdout, os.Stderr)
	cli.Register(commander, app)

	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	app.Backend = client.New(*backendURL, client.WithLogger(logging.Default(level, "")))
	app.Plain = *plain

	os.Exit(int(commander.Execute(context.Background())))
}
