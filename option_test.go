package pnl

import "testing"

func nvdaCall(strike float64) Contract {
	return Contract{
		Underlying: "NVDA",
		Expiration: MustParseDate("2025-06-20"),
		Strike:     USD(strike),
		Right:      Call,
	}
}

func stoEvent(day string, contract Contract, contracts, premium float64) TradeEvent {
	c := contract
	return TradeEvent{
		Date:     MustParseDate(day),
		Symbol:   contract.Underlying,
		Kind:     SellToOpen,
		Quantity: Q(contracts),
		Price:    USD(premium),
		Option:   &c,
	}
}

func TestOptionPosition_ExpireRealizesFullPremium(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 1, 2.00))

	realized := p.Expire()

	if want := USD(200); !realized.Equal(want) { // 2.00 x 1 x 100
		t.Errorf("Expire() realized = %s, want %s", realized, want)
	}
	if !p.Contracts().IsZero() {
		t.Errorf("open contracts = %s, want 0", p.Contracts())
	}
	if !p.Credit().IsZero() {
		t.Errorf("credit = %s, want 0", p.Credit())
	}
	if len(p.Lots()) != 0 {
		t.Errorf("open lots = %d, want 0", len(p.Lots()))
	}
}

func TestOptionPosition_AssignBehavesLikeExpire(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 2, 1.25))
	p.SellToOpen(stoEvent("2025-05-08", nvdaCall(120), 1, 1.75))

	realized := p.Assign()

	// Both lots flatten at their full premium: 2x1.25x100 + 1x1.75x100.
	if want := USD(425); !realized.Equal(want) {
		t.Errorf("Assign() realized = %s, want %s", realized, want)
	}
	if !p.Contracts().IsZero() || !p.Credit().IsZero() {
		t.Errorf("position not flat after assign: contracts=%s credit=%s", p.Contracts(), p.Credit())
	}
}

func TestOptionPosition_PartialBuyToClose(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 3, 1.50))

	realized, err := p.BuyToClose(Q(1), USD(0.50))
	if err != nil {
		t.Fatalf("BuyToClose() error = %v", err)
	}

	if want := USD(100); !realized.Equal(want) { // (1.50-0.50) x 1 x 100
		t.Errorf("BuyToClose() realized = %s, want %s", realized, want)
	}
	if got, want := p.Contracts(), Q(2); !got.Equal(want) {
		t.Errorf("open contracts = %s, want %s", got, want)
	}
	if got, want := p.Credit(), USD(300); !got.Equal(want) { // 1.50 x 2 x 100
		t.Errorf("credit = %s, want %s", got, want)
	}

	lots := p.Lots()
	if len(lots) != 1 {
		t.Fatalf("open lots = %d, want 1", len(lots))
	}
	if got, want := lots[0].Open, MustParseDate("2025-05-01"); got != want {
		t.Errorf("partially closed lot open date = %s, want %s", got, want)
	}
}

func TestOptionPosition_BuyToCloseFIFOAcrossLots(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 2, 2.00))
	p.SellToOpen(stoEvent("2025-05-08", nvdaCall(120), 2, 3.00))

	// Closes both 2.00 contracts and one 3.00 contract.
	realized, err := p.BuyToClose(Q(3), USD(1.00))
	if err != nil {
		t.Fatalf("BuyToClose() error = %v", err)
	}

	// 2x(2.00-1.00)x100 + 1x(3.00-1.00)x100 = 400
	if want := USD(400); !realized.Equal(want) {
		t.Errorf("BuyToClose() realized = %s, want %s", realized, want)
	}
	if got, want := p.Contracts(), Q(1); !got.Equal(want) {
		t.Errorf("open contracts = %s, want %s", got, want)
	}

	lots := p.Lots()
	if len(lots) != 1 {
		t.Fatalf("open lots = %d, want 1", len(lots))
	}
	if got, want := lots[0].Price, USD(3.00); !got.Equal(want) {
		t.Errorf("remaining lot premium = %s, want %s", got, want)
	}
}

func TestOptionPosition_ZeroDebitCloseIsValid(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 1, 0.80))

	// Closing a worthless but not yet expired contract at no cost.
	realized, err := p.BuyToClose(Q(1), USD(0))
	if err != nil {
		t.Fatalf("BuyToClose() with zero debit error = %v", err)
	}
	if want := USD(80); !realized.Equal(want) {
		t.Errorf("BuyToClose() realized = %s, want %s", realized, want)
	}
}

func TestOptionPosition_BuyToCloseRejectsMalformedArguments(t *testing.T) {
	testCases := []struct {
		name      string
		contracts Quantity
		debit     Money
	}{
		{"zero quantity", Q(0), USD(1)},
		{"negative quantity", Q(-1), USD(1)},
		{"negative debit", Q(1), USD(-0.5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewOptionPosition(nvdaCall(120))
			p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 2, 1.50))

			if _, err := p.BuyToClose(tc.contracts, tc.debit); err == nil {
				t.Fatalf("BuyToClose(%s, %s) error = nil, want error", tc.contracts, tc.debit)
			}
			if got, want := p.Contracts(), Q(2); !got.Equal(want) {
				t.Errorf("open contracts after rejected close = %s, want %s", got, want)
			}
		})
	}
}

func TestOptionPosition_UnderMatchedCloseStopsAtEmpty(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	p.SellToOpen(stoEvent("2025-05-01", nvdaCall(120), 1, 1.00))

	realized, err := p.BuyToClose(Q(5), USD(0.25))
	if err != nil {
		t.Fatalf("BuyToClose() error = %v", err)
	}
	if want := USD(75); !realized.Equal(want) { // only 1 contract matched
		t.Errorf("BuyToClose() realized = %s, want %s", realized, want)
	}
	if !p.Contracts().IsZero() {
		t.Errorf("open contracts = %s, want 0", p.Contracts())
	}
}

func TestOptionPosition_ExpireOnEmptyPositionIsZero(t *testing.T) {
	p := NewOptionPosition(nvdaCall(120))
	if realized := p.Expire(); !realized.IsZero() {
		t.Errorf("Expire() on empty position = %s, want 0", realized)
	}
}

func TestContract_KeySeparatesDistinctContracts(t *testing.T) {
	base := nvdaCall(120)

	differentStrike := base
	differentStrike.Strike = USD(130)

	differentExpiration := base
	differentExpiration.Expiration = MustParseDate("2025-07-18")

	differentRight := base
	differentRight.Right = Put

	differentUnderlying := base
	differentUnderlying.Underlying = "AMD"

	for _, other := range []Contract{differentStrike, differentExpiration, differentRight, differentUnderlying} {
		if base.Key() == other.Key() {
			t.Errorf("contracts %s and %s share key %s", base, other, base.Key())
		}
	}

	same := nvdaCall(120)
	if base.Key() != same.Key() {
		t.Errorf("identical contracts have different keys: %s vs %s", base.Key(), same.Key())
	}
}
