package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devalparikh/pnl"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	broker string
	output string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "normalize a broker export into a JSONL event stream" }
func (*importCmd) Usage() string {
	return `brokerpnl import [-broker <name>] [-o <file>] <export.csv>

  Parses a broker activity export and writes the normalized trade events,
  oldest first, one JSON object per line. The resulting file replays faster
  than re-parsing the export and is broker independent.

Usage Examples:
# Normalize a Robinhood export into a ledger file.
$ brokerpnl import -o ledger.jsonl robinhood.csv

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.broker, "broker", "robinhood", "Broker export format of the input file")
	f.StringVar(&c.output, "o", "", "Output file for the normalized events. Defaults to stdout.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import expects exactly one export file")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	broker, err := pnl.BrokerFor(c.broker)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	events, err := broker.Parse(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing export %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := pnl.EncodeEvents(out, events); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing events: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Printf("Wrote %d events to %s\n", len(events), c.output)
	}
	return subcommands.ExitSuccess
}
