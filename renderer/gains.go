// Package renderer turns pnl reports into markdown documents for the CLI.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/devalparikh/pnl"
)

// GainsMarkdown renders a realized gains report to a markdown string.
func GainsMarkdown(r *pnl.RealizedReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Realized Gains Report")

	if len(r.Equities) > 0 {
		doc.H2("Equities")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Symbol", "Open Qty", "Cost Basis", "Realized"},
		}
		for _, row := range r.Equities {
			table.Rows = append(table.Rows, []string{
				row.Symbol,
				row.Open.String(),
				row.CostBasis.String(),
				row.Realized.SignedString(),
			})
		}
		doc.Table(table)
	}

	if len(r.Options) > 0 {
		doc.H2("Options")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Contract", "Open", "Credit", "Realized"},
		}
		for _, row := range r.Options {
			table.Rows = append(table.Rows, []string{
				row.Contract.String(),
				row.Open.String(),
				row.Credit.String(),
				row.Realized.SignedString(),
			})
		}
		doc.Table(table)
	}

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Scope", "Realized"},
		Rows: [][]string{
			{"Equities", r.EquityRealized.SignedString()},
			{"Options", r.OptionRealized.SignedString()},
			{md.Bold("Combined"), md.Bold(r.Realized.SignedString())},
		},
	})

	return doc.String()
}

// PositionsMarkdown renders the open positions report to a markdown string.
func PositionsMarkdown(r *pnl.PositionsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Open Positions")

	if len(r.Equities) == 0 && len(r.Options) == 0 {
		doc.PlainText("Nothing open.")
		return doc.String()
	}

	for _, holding := range r.Equities {
		doc.H2(fmt.Sprintf("%s - %s shares @ %s avg", holding.Symbol, holding.Open, holding.CostBasis))
		doc.Table(lotTable(holding.Lots))
	}

	for _, holding := range r.Options {
		doc.H2(fmt.Sprintf("%s - %s short, %s credit", holding.Contract, holding.Open, holding.Credit))
		doc.Table(lotTable(holding.Lots))
	}

	return doc.String()
}

func lotTable(lots []pnl.Lot) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Opened", "Remaining", "Price"},
	}
	for _, lot := range lots {
		table.Rows = append(table.Rows, []string{
			lot.Open.String(),
			lot.Remaining.String(),
			lot.Price.String(),
		})
	}
	return table
}
