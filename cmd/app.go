// Package cmd implements the CLI application to compute realized gains from
// brokerage exports.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/devalparikh/pnl"
)

// Commands lists the subcommands the brokerpnl binary registers.
// A main package iterates over it and calls Execute on the selected one.
var Commands = []subcommands.Command{
	&importCmd{},
	&gainsCmd{},
	&positionsCmd{},
}

// printMarkdown renders a markdown document to the terminal. If the fancy
// renderer fails (dumb terminal, no TTY), the raw markdown is still printed.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

// loadEvents reads trade events from a ledger file. A .csv file goes through
// the named broker's importer; anything else is read as the normalized JSONL
// event stream produced by the import command.
func loadEvents(path, broker string) ([]pnl.TradeEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		b, err := pnl.BrokerFor(broker)
		if err != nil {
			return nil, err
		}
		return b.Parse(f)
	}
	return pnl.DecodeEvents(f)
}

// replay builds a portfolio from events, either halting on the first
// malformed event or skipping them all and reporting at the end.
func replay(events []pnl.TradeEvent, skipErrors bool) (*pnl.Portfolio, error) {
	p := pnl.NewPortfolio()
	if skipErrors {
		if err := p.ReplayAll(events); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipped malformed events:\n%v\n", err)
		}
		return p, nil
	}
	if err := p.Replay(events); err != nil {
		return nil, err
	}
	return p, nil
}
