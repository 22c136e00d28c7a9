package pnl

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Portfolio owns one equity position per symbol and one option position per
// contract key, routes trade events to them, and keeps running realized
// totals per asset class.
//
// All state is per instance; replaying further event batches into the same
// portfolio is additive. A portfolio must not be shared across goroutines:
// replay is a strict sequential fold.
type Portfolio struct {
	equities map[string]*EquityPosition
	options  map[ContractKey]*OptionPosition

	equityRealized Money
	optionRealized Money
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		equities: make(map[string]*EquityPosition),
		options:  make(map[ContractKey]*OptionPosition),
	}
}

// Equity returns the position for a symbol, or nil if no event referenced it.
func (p *Portfolio) Equity(symbol string) *EquityPosition {
	return p.equities[symbol]
}

// Option returns the position for a contract key, or nil if no event
// referenced that contract.
func (p *Portfolio) Option(key ContractKey) *OptionPosition {
	return p.options[key]
}

// Equities iterates over the equity positions in symbol order.
func (p *Portfolio) Equities() iter.Seq[*EquityPosition] {
	return func(yield func(*EquityPosition) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(p.equities)) {
			if !yield(p.equities[symbol]) {
				return
			}
		}
	}
}

// Options iterates over the option positions in contract key order.
func (p *Portfolio) Options() iter.Seq[*OptionPosition] {
	return func(yield func(*OptionPosition) bool) {
		for _, key := range slices.Sorted(maps.Keys(p.options)) {
			if !yield(p.options[key]) {
				return
			}
		}
	}
}

// EquityRealized returns the realized gain over all equity positions.
func (p *Portfolio) EquityRealized() Money { return p.equityRealized }

// OptionRealized returns the realized gain over all option positions.
func (p *Portfolio) OptionRealized() Money { return p.optionRealized }

// Realized returns the combined realized gain of the portfolio.
func (p *Portfolio) Realized() Money { return p.equityRealized.Add(p.optionRealized) }

// equity returns the position for a symbol, creating it on first reference.
func (p *Portfolio) equity(symbol string) *EquityPosition {
	pos, ok := p.equities[symbol]
	if !ok {
		pos = NewEquityPosition(symbol)
		p.equities[symbol] = pos
	}
	return pos
}

// option returns the position for a contract, creating it on first reference.
func (p *Portfolio) option(contract Contract) *OptionPosition {
	key := contract.Key()
	pos, ok := p.options[key]
	if !ok {
		pos = NewOptionPosition(contract)
		p.options[key] = pos
	}
	return pos
}

// Apply routes a single event to its ledger and accumulates the realized
// gain it produces. A non-nil error means the event was malformed and left
// every position and total untouched.
//
// Events must be applied in ascending chronological order per instrument;
// Apply does not sort and does not guard against replaying the same event
// twice. Dividend, interest, transfer and unknown events are no-ops.
func (p *Portfolio) Apply(ev TradeEvent) error {
	switch ev.Kind {
	case Buy:
		if !ev.Quantity.IsPositive() {
			return fmt.Errorf("buy quantity must be positive, got %s", ev.Quantity)
		}
		if ev.Price.IsNegative() {
			return fmt.Errorf("buy price cannot be negative, got %s", ev.Price)
		}
		p.equity(ev.Symbol).Buy(ev)

	case Sell:
		realized, err := p.equity(ev.Symbol).Sell(ev.Quantity, ev.Price)
		if err != nil {
			return err
		}
		p.equityRealized = p.equityRealized.Add(realized)

	case SellToOpen:
		contract, err := optionIdentity(ev)
		if err != nil {
			return err
		}
		if !ev.Quantity.IsPositive() {
			return fmt.Errorf("sell-to-open quantity must be positive, got %s", ev.Quantity)
		}
		p.option(contract).SellToOpen(ev)

	case BuyToClose:
		contract, err := optionIdentity(ev)
		if err != nil {
			return err
		}
		realized, err := p.option(contract).BuyToClose(ev.Quantity, ev.Price)
		if err != nil {
			return err
		}
		p.optionRealized = p.optionRealized.Add(realized)

	case Expired:
		contract, err := optionIdentity(ev)
		if err != nil {
			return err
		}
		// Expiration closes whatever remains open; the event's own
		// quantity and price are ignored.
		p.optionRealized = p.optionRealized.Add(p.option(contract).Expire())

	case Assignment:
		contract, err := optionIdentity(ev)
		if err != nil {
			return err
		}
		p.optionRealized = p.optionRealized.Add(p.option(contract).Assign())

	case Dividend, Interest, Transfer, Unknown:
		// Inert for lot matching.
	}
	return nil
}

// optionIdentity extracts the resolved contract identity from an option
// event. An option event that reaches the engine without one is malformed:
// resolving the identity is the importer's job.
func optionIdentity(ev TradeEvent) (Contract, error) {
	if ev.Option == nil {
		return Contract{}, fmt.Errorf("%s event on %s has no resolved option contract", ev.Kind, ev.Symbol)
	}
	if ev.Option.Underlying == "" || ev.Option.Expiration.IsZero() {
		return Contract{}, fmt.Errorf("%s event on %s has an incomplete option contract %s", ev.Kind, ev.Symbol, ev.Option)
	}
	return *ev.Option, nil
}

// Replay applies an ordered sequence of events and halts on the first
// malformed one, reporting which event failed. Events already applied stay
// applied: the caller owns the decision to retry, fix or abandon the batch.
func (p *Portfolio) Replay(events []TradeEvent) error {
	for i, ev := range events {
		if err := p.Apply(ev); err != nil {
			return fmt.Errorf("event %d (%s %s on %s): %w", i, ev.Kind, ev.Symbol, ev.Date, err)
		}
	}
	return nil
}

// ReplayAll applies an ordered sequence of events, skipping malformed ones,
// and returns the per-event errors joined together (nil when every event
// applied cleanly). Use this for exports known to contain junk rows.
func (p *Portfolio) ReplayAll(events []TradeEvent) error {
	var errs []error
	for i, ev := range events {
		if err := p.Apply(ev); err != nil {
			errs = append(errs, fmt.Errorf("event %d (%s %s on %s): %w", i, ev.Kind, ev.Symbol, ev.Date, err))
		}
	}
	return errors.Join(errs...)
}
