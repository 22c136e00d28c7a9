// Package pnl computes realized profit and loss for a brokerage account by
// replaying a chronological ledger of trade events against per-instrument
// inventories of open tax lots, matched first-in-first-out.
//
// The engine tracks two kinds of inventory: equity share lots, opened by
// buys and consumed by sells, and short option contract lots, opened by
// sell-to-open and consumed by buy-to-close, expiration or assignment.
// Partial consumption splits a lot in place, preserving its original open
// date and therefore its place in the FIFO queue.
//
// A [Portfolio] routes each event to the right position, accumulates the
// realized gain at position, asset class and portfolio scope, and exposes
// the final state for reporting. The package also bundles the surrounding
// plumbing: a [Broker] importer for Robinhood activity CSVs, a JSONL codec
// for the normalized event stream, and report builders consumed by the
// renderer and the CLI.
package pnl
