package pnl

import (
	"fmt"
	"strings"
)

// EventKind identifies the nature of a ledger entry.
type EventKind int

const (
	// Unknown marks an event the importer could not classify. It is inert.
	Unknown EventKind = iota
	// Buy acquires equity shares.
	Buy
	// Sell disposes equity shares.
	Sell
	// SellToOpen opens a short option position, collecting premium.
	SellToOpen
	// BuyToClose closes short option contracts, paying a debit.
	BuyToClose
	// Assignment flattens a short option position; the premium is kept.
	Assignment
	// Expired closes a short option position worthless; the premium is kept.
	Expired
	// Dividend, Interest and Transfer are cash events, inert for lot matching.
	Dividend
	Interest
	Transfer
)

var eventKindNames = map[EventKind]string{
	Unknown:    "unknown",
	Buy:        "buy",
	Sell:       "sell",
	SellToOpen: "sell-to-open",
	BuyToClose: "buy-to-close",
	Assignment: "assignment",
	Expired:    "expired",
	Dividend:   "dividend",
	Interest:   "interest",
	Transfer:   "transfer",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEventKind parses a string into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	for k, name := range eventKindNames {
		if name == s {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("unknown event kind: %q", s)
}

// Right is the side of an option contract.
type Right int

const (
	Call Right = iota
	Put
)

func (r Right) String() string {
	switch r {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return "unknown"
	}
}

// ParseRight parses a string into a Right. It is case-insensitive.
func ParseRight(s string) (Right, error) {
	switch strings.ToLower(s) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	default:
		return 0, fmt.Errorf("unknown option right: %q", s)
	}
}

// Contract is the resolved identity of an option contract.
//
// Two contracts on the same underlying with a different expiration, strike or
// right are economically distinct and must never share a ledger.
type Contract struct {
	Underlying string
	Expiration Date
	Strike     Money
	Right      Right
}

// ContractKey uniquely identifies an option contract for position routing.
type ContractKey string

// Key derives the routing key for this contract from its full identity.
func (c Contract) Key() ContractKey {
	return ContractKey(fmt.Sprintf("%s|%s|%s|%s", c.Underlying, c.Expiration, c.Strike.Decimal(), c.Right))
}

// String returns a human readable description, e.g. "NVDA 2025-06-20 call $120".
func (c Contract) String() string {
	return fmt.Sprintf("%s %s %s %s", c.Underlying, c.Expiration, c.Right, c.Strike)
}

// TradeEvent is one normalized ledger entry: a single buy, sell, option open,
// option close, or cash activity. Events are immutable once normalized; the
// engine copies what it needs into lots and never writes back into an event.
type TradeEvent struct {
	Date     Date      // activity date, also the birth date of any lot it opens
	Symbol   string    // instrument symbol as reported by the broker
	Kind     EventKind // what happened
	Quantity Quantity  // positive magnitude; contracts for options
	Price    Money     // per-share price, or per-contract premium
	Amount   Money     // net cash amount as reported, informational
	Note     string    // free text carried from the export
	Option   *Contract // resolved option identity, nil for equity events
}

// IsOption reports whether the event targets an option contract.
func (e TradeEvent) IsOption() bool { return e.Option != nil }
