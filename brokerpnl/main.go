package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/devalparikh/pnl/cmd"
)

func main() {
	// Shell completion: exits on its own when invoked by the shell.
	completion().Complete("brokerpnl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	ledgerFiles := predict.Files("*")
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"import": {
				Flags: map[string]complete.Predictor{
					"broker": predict.Set{"robinhood"},
					"o":      predict.Files("*.jsonl"),
				},
				Args: predict.Files("*.csv"),
			},
			"gains": {
				Flags: map[string]complete.Predictor{
					"broker":      predict.Set{"robinhood"},
					"symbol":      predict.Something,
					"skip-errors": predict.Nothing,
				},
				Args: ledgerFiles,
			},
			"positions": {
				Flags: map[string]complete.Predictor{
					"broker":      predict.Set{"robinhood"},
					"skip-errors": predict.Nothing,
				},
				Args: ledgerFiles,
			},
		},
	}
}
