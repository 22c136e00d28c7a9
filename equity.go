package pnl

import "fmt"

// EquityPosition tracks the open share lots of a single symbol and the
// realized gain accumulated by closing them FIFO.
type EquityPosition struct {
	symbol    string
	quantity  Quantity // sum of remaining lot quantities
	totalCost Money    // sum of (lot price x lot remaining quantity)
	realized  Money
	open      lotQueue
	closed    []Lot // fully or partially consumed portions, for audit
}

// NewEquityPosition creates an empty position for a symbol.
func NewEquityPosition(symbol string) *EquityPosition {
	return &EquityPosition{symbol: symbol}
}

func (p *EquityPosition) Symbol() string { return p.symbol }

// Quantity returns the number of shares currently open.
func (p *EquityPosition) Quantity() Quantity { return p.quantity }

// TotalCost returns the cost basis of all open lots.
func (p *EquityPosition) TotalCost() Money { return p.totalCost }

// CostBasis returns the average cost per open share, zero when flat.
func (p *EquityPosition) CostBasis() Money {
	if p.quantity.IsZero() {
		return Money{}
	}
	return p.totalCost.Div(p.quantity)
}

// Realized returns the realized gain accumulated so far.
func (p *EquityPosition) Realized() Money { return p.realized }

// Lots returns a copy of the open lots in FIFO order.
func (p *EquityPosition) Lots() []Lot { return p.open.snapshot() }

// ClosedLots returns the consumed lot portions in the order they were closed.
func (p *EquityPosition) ClosedLots() []Lot { return p.closed }

// Buy appends a new lot from a purchase event. The caller validates the
// event first: quantity must be positive and price non-negative.
func (p *EquityPosition) Buy(ev TradeEvent) {
	p.totalCost = p.totalCost.Add(ev.Price.Mul(ev.Quantity))
	p.quantity = p.quantity.Add(ev.Quantity)
	p.open.push(openLot(ev))
}

// Sell consumes open lots oldest-first and returns the realized gain for
// this sale, which is also added to the position's accumulator.
//
// Selling more shares than are open is not an error: brokerage exports can
// omit the opening trade (granted shares, transfers predating the export
// window), so the sale simply stops once the open lots are exhausted and
// the gain covers only the matched portion.
func (p *EquityPosition) Sell(quantityToSell Quantity, salePricePerShare Money) (Money, error) {
	if !quantityToSell.IsPositive() {
		return Money{}, fmt.Errorf("sell quantity must be positive, got %s", quantityToSell)
	}
	if !salePricePerShare.IsPositive() {
		return Money{}, fmt.Errorf("sell price must be positive, got %s", salePricePerShare)
	}

	var realized Money
	for quantityToSell.IsPositive() && !p.open.empty() {
		lot := p.open.front()

		matched := quantityToSell.Min(lot.Remaining)
		proceeds := salePricePerShare.Mul(matched)
		cost := lot.Price.Mul(matched)
		realized = realized.Add(proceeds.Sub(cost))

		p.quantity = p.quantity.Sub(matched)
		p.totalCost = p.totalCost.Sub(cost)
		p.closed = append(p.closed, Lot{Open: lot.Open, Remaining: matched, Price: lot.Price})

		if matched.Equal(lot.Remaining) {
			p.open.pop()
		} else {
			// Partial sale: shrink the front lot in place. It keeps its
			// original open date and stays first in line.
			lot.Remaining = lot.Remaining.Sub(matched)
		}

		quantityToSell = quantityToSell.Sub(matched)
	}

	p.realized = p.realized.Add(realized)
	return realized, nil
}
