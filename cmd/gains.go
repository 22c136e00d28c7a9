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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	broker     string
	symbol     string
	skipErrors bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis over a trade ledger" }
func (*gainsCmd) Usage() string {
	return `brokerpnl gains [-broker <name>] [-symbol <sym>] [-skip-errors] <ledger>

  Replays a broker export (.csv) or a normalized event stream (.jsonl) and
  prints the realized gains per symbol, per option contract, and in total.

Usage Examples:
# Realized gains straight from a Robinhood export.
$ brokerpnl gains robinhood.csv

# Only NVDA, tolerating junk rows.
$ brokerpnl gains -symbol NVDA -skip-errors ledger.jsonl

`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.broker, "broker", "robinhood", "Broker export format for .csv inputs")
	f.StringVar(&c.symbol, "symbol", "", "Restrict the report to one symbol or option underlying")
	f.BoolVar(&c.skipErrors, "skip-errors", false, "Skip malformed events instead of halting on the first one")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "gains expects exactly one ledger file")
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

	report := pnl.NewRealizedReport(portfolio)
	if c.symbol != "" {
		filterReport(report, c.symbol)
	}

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}

// filterReport trims the report rows to one symbol. Option rows match on the
// contract underlying. The asset class and combined totals are recomputed
// from the surviving rows so the report stays internally consistent.
func filterReport(report *pnl.RealizedReport, symbol string) {
	var equities []pnl.EquityGains
	var equityTotal pnl.Money
	for _, row := range report.Equities {
		if row.Symbol == symbol {
			equities = append(equities, row)
			equityTotal = equityTotal.Add(row.Realized)
		}
	}

	var options []pnl.OptionGains
	var optionTotal pnl.Money
	for _, row := range report.Options {
		if row.Contract.Underlying == symbol {
			options = append(options, row)
			optionTotal = optionTotal.Add(row.Realized)
		}
	}

	report.Equities = equities
	report.Options = options
	report.EquityRealized = equityTotal
	report.OptionRealized = optionTotal
	report.Realized = equityTotal.Add(optionTotal)
}
