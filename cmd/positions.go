package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devalparikh/pnl"
	"github.com/devalparikh/pnl/renderer"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	broker     string
	skipErrors bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "open share lots and short option lots" }
func (*positionsCmd) Usage() string {
	return `brokerpnl positions [-broker <name>] [-skip-errors] <ledger>

  Replays a broker export (.csv) or a normalized event stream (.jsonl) and
  lists what is still open: every share lot and short option contract lot,
  with its open date, remaining size and price.

`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.broker, "broker", "robinhood", "Broker export format for .csv inputs")
	f.BoolVar(&c.skipErrors, "skip-errors", false, "Skip malformed events instead of halting on the first one")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "positions expects exactly one ledger file")
		return subcommands.ExitUsageError
	}

	events, err := loadEvents(f.Arg(0), c.broker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	portfolio, err := replay(events, c.skipErrors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PositionsMarkdown(pnl.NewPositionsReport(portfolio)))
	return subcommands.ExitSuccess
}
