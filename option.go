package pnl

import "fmt"

// ContractMultiplier is the number of underlying shares one standard option
// contract represents.
const ContractMultiplier = 100

var multiplier = Q(ContractMultiplier)

// OptionPosition tracks the open short lots of a single option contract:
// the account is the premium seller, so sell-to-open opens a lot and
// buy-to-close, expiration or assignment consume it.
type OptionPosition struct {
	contract  Contract
	contracts Quantity // open short contracts
	credit    Money    // premium collected on still-open lots
	realized  Money
	open      lotQueue
	closed    []Lot // consumed lot portions, for audit
}

// NewOptionPosition creates an empty short position for a contract.
func NewOptionPosition(contract Contract) *OptionPosition {
	return &OptionPosition{contract: contract}
}

func (p *OptionPosition) Contract() Contract { return p.contract }

// Contracts returns the number of short contracts currently open.
func (p *OptionPosition) Contracts() Quantity { return p.contracts }

// Credit returns the premium collected on the open lots.
func (p *OptionPosition) Credit() Money { return p.credit }

// Realized returns the realized gain accumulated so far.
func (p *OptionPosition) Realized() Money { return p.realized }

// Lots returns a copy of the open lots in FIFO order.
func (p *OptionPosition) Lots() []Lot { return p.open.snapshot() }

// ClosedLots returns the consumed lot portions in the order they were closed.
func (p *OptionPosition) ClosedLots() []Lot { return p.closed }

// SellToOpen appends a new short lot. The lot price is the premium collected
// per contract; the position credit grows by premium x contracts x 100.
func (p *OptionPosition) SellToOpen(ev TradeEvent) {
	credit := ev.Price.Mul(ev.Quantity).Mul(multiplier)
	p.credit = p.credit.Add(credit)
	p.contracts = p.contracts.Add(ev.Quantity)
	p.open.push(openLot(ev))
}

// BuyToClose consumes open lots oldest-first, paying debitPerContract to
// close each matched contract, and returns the realized gain. A zero debit
// is valid: it closes worthless but not yet expired contracts at no cost.
//
// Like equity sells, closing more contracts than are open is tolerated: the
// close stops when the open lots run out.
func (p *OptionPosition) BuyToClose(contractsToClose Quantity, debitPerContract Money) (Money, error) {
	if !contractsToClose.IsPositive() {
		return Money{}, fmt.Errorf("buy-to-close quantity must be positive, got %s", contractsToClose)
	}
	if debitPerContract.IsNegative() {
		return Money{}, fmt.Errorf("buy-to-close debit cannot be negative, got %s", debitPerContract)
	}

	var realized Money
	for contractsToClose.IsPositive() && !p.open.empty() {
		lot := p.open.front()

		matched := contractsToClose.Min(lot.Remaining)
		lotCredit := lot.Price.Mul(matched).Mul(multiplier)
		lotDebit := debitPerContract.Mul(matched).Mul(multiplier)
		realized = realized.Add(lotCredit.Sub(lotDebit))

		p.contracts = p.contracts.Sub(matched)
		p.credit = p.credit.Sub(lotCredit)
		p.closed = append(p.closed, Lot{Open: lot.Open, Remaining: matched, Price: lot.Price})

		if matched.Equal(lot.Remaining) {
			p.open.pop()
		} else {
			// Partial close: shrink the front lot in place, keeping its
			// original open date.
			lot.Remaining = lot.Remaining.Sub(matched)
		}

		contractsToClose = contractsToClose.Sub(matched)
	}

	p.realized = p.realized.Add(realized)
	return realized, nil
}

// Expire closes every open lot at once: the contracts expired worthless, the
// seller keeps the entire premium, so the realized gain is the full credit
// of each lot. The open queue, contract count and credit are all zeroed.
func (p *OptionPosition) Expire() Money {
	var realized Money
	for _, lot := range p.open.drain() {
		realized = realized.Add(lot.Price.Mul(lot.Remaining).Mul(multiplier))
		p.closed = append(p.closed, lot)
	}
	p.contracts = Quantity{}
	p.credit = Money{}
	p.realized = p.realized.Add(realized)
	return realized
}

// Assign flattens the position exactly like Expire: the premium is kept and
// every open lot is closed. The equity delivered or called away by the
// assignment is not modeled here; if needed, the equity ledger must receive
// a separate synthetic buy or sell at the strike.
func (p *OptionPosition) Assign() Money { return p.Expire() }
