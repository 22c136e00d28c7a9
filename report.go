package pnl

// RealizedReport contains the results of a realized gain calculation over a
// replayed portfolio.
type RealizedReport struct {
	Equities []EquityGains
	Options  []OptionGains

	EquityRealized Money
	OptionRealized Money
	Realized       Money
}

// EquityGains holds the realized gain and open state for a single symbol.
type EquityGains struct {
	Symbol    string
	Open      Quantity // shares still open
	CostBasis Money    // total cost of the open lots
	Realized  Money
}

// OptionGains holds the realized gain and open state for a single contract.
type OptionGains struct {
	Contract Contract
	Open     Quantity // short contracts still open
	Credit   Money    // premium collected on the open lots
	Realized Money
}

// NewRealizedReport computes the realized gains report for a portfolio.
// Positions that never realized anything and hold nothing open are omitted.
// Rows follow the portfolio's deterministic position order.
func NewRealizedReport(p *Portfolio) *RealizedReport {
	report := &RealizedReport{
		EquityRealized: p.EquityRealized(),
		OptionRealized: p.OptionRealized(),
		Realized:       p.Realized(),
	}

	for pos := range p.Equities() {
		if pos.Realized().IsZero() && pos.Quantity().IsZero() {
			continue
		}
		report.Equities = append(report.Equities, EquityGains{
			Symbol:    pos.Symbol(),
			Open:      pos.Quantity(),
			CostBasis: pos.TotalCost(),
			Realized:  pos.Realized(),
		})
	}

	for pos := range p.Options() {
		if pos.Realized().IsZero() && pos.Contracts().IsZero() {
			continue
		}
		report.Options = append(report.Options, OptionGains{
			Contract: pos.Contract(),
			Open:     pos.Contracts(),
			Credit:   pos.Credit(),
			Realized: pos.Realized(),
		})
	}

	return report
}

// PositionsReport lists the open lots of every position that still holds
// something, for inventory style reporting.
type PositionsReport struct {
	Equities []EquityHolding
	Options  []OptionHolding
}

// EquityHolding is the open inventory of one symbol.
type EquityHolding struct {
	Symbol    string
	Open      Quantity
	CostBasis Money // average cost per open share
	Lots      []Lot
}

// OptionHolding is the open short inventory of one contract.
type OptionHolding struct {
	Contract Contract
	Open     Quantity
	Credit   Money
	Lots     []Lot
}

// NewPositionsReport computes the open positions report for a portfolio.
func NewPositionsReport(p *Portfolio) *PositionsReport {
	report := &PositionsReport{}

	for pos := range p.Equities() {
		if pos.Quantity().IsZero() {
			continue
		}
		report.Equities = append(report.Equities, EquityHolding{
			Symbol:    pos.Symbol(),
			Open:      pos.Quantity(),
			CostBasis: pos.CostBasis(),
			Lots:      pos.Lots(),
		})
	}

	for pos := range p.Options() {
		if pos.Contracts().IsZero() {
			continue
		}
		report.Options = append(report.Options, OptionHolding{
			Contract: pos.Contract(),
			Open:     pos.Contracts(),
			Credit:   pos.Credit(),
			Lots:     pos.Lots(),
		})
	}

	return report
}
