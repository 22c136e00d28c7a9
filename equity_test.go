package pnl

import "testing"

func buyEvent(day string, symbol string, quantity, price float64) TradeEvent {
	return TradeEvent{
		Date:     MustParseDate(day),
		Symbol:   symbol,
		Kind:     Buy,
		Quantity: Q(quantity),
		Price:    USD(price),
	}
}

func TestEquityPosition_SellConsumesOldestLotFirst(t *testing.T) {
	p := NewEquityPosition("AAPL")
	p.Buy(buyEvent("2025-01-10", "AAPL", 10, 10))
	p.Buy(buyEvent("2025-02-10", "AAPL", 10, 20))
	p.Buy(buyEvent("2025-03-10", "AAPL", 10, 30))

	realized, err := p.Sell(Q(5), USD(15))
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	// Only the T1 lot is touched: 5 x (15-10) = 25.
	if want := USD(25); !realized.Equal(want) {
		t.Errorf("Sell() realized = %s, want %s", realized, want)
	}

	lots := p.Lots()
	if len(lots) != 3 {
		t.Fatalf("open lots = %d, want 3", len(lots))
	}
	if got, want := lots[0].Remaining, Q(5); !got.Equal(want) {
		t.Errorf("front lot remaining = %s, want %s", got, want)
	}
	if got, want := lots[0].Open, MustParseDate("2025-01-10"); got != want {
		t.Errorf("front lot open date = %s, want %s", got, want)
	}
	if got, want := lots[1].Remaining, Q(10); !got.Equal(want) {
		t.Errorf("second lot remaining = %s, want %s", got, want)
	}
	if got, want := lots[2].Remaining, Q(10); !got.Equal(want) {
		t.Errorf("third lot remaining = %s, want %s", got, want)
	}
}

func TestEquityPosition_PartialLotKeepsItsPlaceInLine(t *testing.T) {
	p := NewEquityPosition("NVDA")
	p.Buy(buyEvent("2025-01-10", "NVDA", 10, 10))
	p.Buy(buyEvent("2025-01-20", "NVDA", 10, 20))

	realized, err := p.Sell(Q(5), USD(15))
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if want := USD(25); !realized.Equal(want) {
		t.Errorf("first Sell() realized = %s, want %s", realized, want)
	}

	// The second sale must consume the remnant of the first lot before
	// touching the lot opened later.
	realized, err = p.Sell(Q(5), USD(15))
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if want := USD(25); !realized.Equal(want) {
		t.Errorf("second Sell() realized = %s, want %s", realized, want)
	}

	lots := p.Lots()
	if len(lots) != 1 {
		t.Fatalf("open lots = %d, want 1", len(lots))
	}
	if got, want := lots[0].Open, MustParseDate("2025-01-20"); got != want {
		t.Errorf("remaining lot open date = %s, want %s", got, want)
	}
	if got, want := lots[0].Price, USD(20); !got.Equal(want) {
		t.Errorf("remaining lot price = %s, want %s", got, want)
	}
}

func TestEquityPosition_QuantityAndCostConservation(t *testing.T) {
	p := NewEquityPosition("GOOG")
	p.Buy(buyEvent("2025-01-10", "GOOG", 10, 100))
	p.Buy(buyEvent("2025-02-10", "GOOG", 7, 110))
	if _, err := p.Sell(Q(12), USD(120)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	p.Buy(buyEvent("2025-03-10", "GOOG", 3, 130))

	var sumQty Quantity
	var sumCost Money
	for _, lot := range p.Lots() {
		sumQty = sumQty.Add(lot.Remaining)
		sumCost = sumCost.Add(lot.Price.Mul(lot.Remaining))
		if lot.Remaining.IsNegative() {
			t.Errorf("lot remaining is negative: %s", lot.Remaining)
		}
	}

	if !p.Quantity().Equal(sumQty) {
		t.Errorf("open quantity = %s, sum of lots = %s", p.Quantity(), sumQty)
	}
	if !p.TotalCost().Equal(sumCost) {
		t.Errorf("total cost = %s, sum of lots = %s", p.TotalCost(), sumCost)
	}
}

func TestEquityPosition_UnderMatchedSellIsNotAnError(t *testing.T) {
	p := NewEquityPosition("MSFT")

	// No open lots at all, e.g. shares granted before the export window.
	realized, err := p.Sell(Q(100), USD(50))
	if err != nil {
		t.Fatalf("Sell() on empty ledger error = %v, want nil", err)
	}
	if !realized.IsZero() {
		t.Errorf("Sell() on empty ledger realized = %s, want 0", realized)
	}
	if !p.Quantity().IsZero() || !p.TotalCost().IsZero() {
		t.Errorf("empty ledger mutated: quantity=%s cost=%s", p.Quantity(), p.TotalCost())
	}

	// Partially matched: only the open portion realizes a gain.
	p.Buy(buyEvent("2025-01-10", "MSFT", 5, 10))
	realized, err = p.Sell(Q(8), USD(12))
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if want := USD(10); !realized.Equal(want) { // 5 x (12-10)
		t.Errorf("partially matched Sell() realized = %s, want %s", realized, want)
	}
	if !p.Quantity().IsZero() {
		t.Errorf("open quantity = %s, want 0", p.Quantity())
	}
}

func TestEquityPosition_SellRejectsMalformedArguments(t *testing.T) {
	testCases := []struct {
		name     string
		quantity Quantity
		price    Money
	}{
		{"zero quantity", Q(0), USD(10)},
		{"negative quantity", Q(-5), USD(10)},
		{"zero price", Q(5), USD(0)},
		{"negative price", Q(5), USD(-10)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewEquityPosition("AAPL")
			p.Buy(buyEvent("2025-01-10", "AAPL", 10, 10))

			if _, err := p.Sell(tc.quantity, tc.price); err == nil {
				t.Fatalf("Sell(%s, %s) error = nil, want error", tc.quantity, tc.price)
			}
			// A rejected sale must leave the ledger untouched.
			if got, want := p.Quantity(), Q(10); !got.Equal(want) {
				t.Errorf("open quantity after rejected sell = %s, want %s", got, want)
			}
			if !p.Realized().IsZero() {
				t.Errorf("realized after rejected sell = %s, want 0", p.Realized())
			}
		})
	}
}

func TestEquityPosition_CostBasis(t *testing.T) {
	p := NewEquityPosition("AAPL")
	if !p.CostBasis().IsZero() {
		t.Errorf("flat position cost basis = %s, want 0", p.CostBasis())
	}

	p.Buy(buyEvent("2025-01-10", "AAPL", 10, 10))
	p.Buy(buyEvent("2025-02-10", "AAPL", 10, 20))
	if got, want := p.CostBasis(), USD(15); !got.Equal(want) {
		t.Errorf("cost basis = %s, want %s", got, want)
	}
}

func TestEquityPosition_ClosedLotsAudit(t *testing.T) {
	p := NewEquityPosition("AAPL")
	p.Buy(buyEvent("2025-01-10", "AAPL", 10, 10))
	if _, err := p.Sell(Q(4), USD(15)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if _, err := p.Sell(Q(6), USD(15)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	closed := p.ClosedLots()
	if len(closed) != 2 {
		t.Fatalf("closed lots = %d, want 2", len(closed))
	}
	if got, want := closed[0].Remaining, Q(4); !got.Equal(want) {
		t.Errorf("first closed portion = %s, want %s", got, want)
	}
	if got, want := closed[1].Remaining, Q(6); !got.Equal(want) {
		t.Errorf("second closed portion = %s, want %s", got, want)
	}
	for _, lot := range closed {
		if got, want := lot.Open, MustParseDate("2025-01-10"); got != want {
			t.Errorf("closed portion open date = %s, want %s", got, want)
		}
	}
}
