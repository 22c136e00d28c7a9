package pnl

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Broker normalizes one broker's export format into trade events.
//
// Implementations return events in ascending chronological order, with
// option descriptions already resolved into contract identities, ready for
// [Portfolio.Replay].
type Broker interface {
	Parse(r io.Reader) ([]TradeEvent, error)
}

// BrokerFor returns the Broker for a broker name.
func BrokerFor(name string) (Broker, error) {
	switch strings.ToLower(name) {
	case "robinhood":
		return Robinhood{}, nil
	default:
		return nil, fmt.Errorf("unsupported broker: %q", name)
	}
}

// Robinhood parses the activity report CSV that Robinhood exports.
type Robinhood struct{}

// robinhoodDateFormat is the M/D/YYYY format Robinhood uses for activity
// dates and option expirations.
const robinhoodDateFormat = "1/2/2006"

// robinhoodRow mirrors one line of the export. Every column is read as raw
// text: Robinhood formats numbers as display strings ("$1,234.56",
// "($12.00)" for negatives) and leaves cells blank on non-trade rows.
type robinhoodRow struct {
	ActivityDate string `csv:"Activity Date"`
	ProcessDate  string `csv:"Process Date"`
	SettleDate   string `csv:"Settle Date"`
	Instrument   string `csv:"Instrument"`
	Description  string `csv:"Description"`
	TransCode    string `csv:"Trans Code"`
	Quantity     string `csv:"Quantity"`
	Price        string `csv:"Price"`
	Amount       string `csv:"Amount"`
}

// Parse reads a Robinhood activity CSV and returns normalized trade events
// in chronological order. Rows without an activity date (disclaimers,
// padding) are skipped. The export lists newest activity first, so the
// parsed rows are reversed before returning.
func (Robinhood) Parse(r io.Reader) ([]TradeEvent, error) {
	var rows []robinhoodRow
	if err := gocsv.UnmarshalCSV(gocsv.LazyCSVReader(r), &rows); err != nil {
		return nil, fmt.Errorf("cannot parse robinhood csv: %w", err)
	}

	var events []TradeEvent
	for _, row := range rows {
		if strings.TrimSpace(row.ActivityDate) == "" {
			continue
		}
		ev, err := row.event()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	// Newest-first in the export, oldest-first for replay.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// event normalizes one csv row into a trade event.
func (row robinhoodRow) event() (TradeEvent, error) {
	day, err := time.Parse(robinhoodDateFormat, strings.TrimSpace(row.ActivityDate))
	if err != nil {
		return TradeEvent{}, fmt.Errorf("invalid activity date %q: %w", row.ActivityDate, err)
	}

	ev := TradeEvent{
		Date:     NewDate(day.Date()),
		Symbol:   strings.TrimSpace(row.Instrument),
		Kind:     mapTransCode(row.TransCode, row.Description),
		Quantity: Q(parseCurrencyText(row.Quantity)),
		Price:    USD(parseCurrencyText(row.Price)),
		Amount:   USD(parseCurrencyText(row.Amount)),
		Note:     strings.TrimSpace(row.Description),
	}

	if contract, ok := parseOptionDescription(row.Description); ok {
		ev.Option = &contract
	}
	return ev, nil
}

// parseCurrencyText normalizes Robinhood numeric display text into a
// decimal: "$1,234.56" is 1234.56 and "($12.00)" is -12. Blank or otherwise
// unparseable text becomes zero, the neutral value for the inert rows that
// carry it.
func parseCurrencyText(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "$", "")
	text = strings.ReplaceAll(text, ",", "")

	negative := false
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		negative = true
		text = text[1 : len(text)-1]
	}

	val, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return val.Neg()
	}
	return val
}

// mapTransCode maps a Robinhood trans code to an event kind, falling back on
// keywords in the description for rows without a recognized code.
func mapTransCode(code, description string) EventKind {
	code = strings.ToUpper(strings.TrimSpace(code))
	description = strings.ToLower(description)

	switch code {
	case "BUY":
		return Buy
	case "SELL":
		return Sell
	case "STO":
		return SellToOpen
	case "BTC":
		return BuyToClose
	case "OASGN":
		return Assignment
	case "EXP":
		return Expired
	case "DIV":
		return Dividend
	case "INT":
		return Interest
	case "XFER":
		return Transfer
	}

	switch {
	case strings.Contains(description, "assignment"):
		return Assignment
	case strings.Contains(description, "expire"):
		return Expired
	case strings.Contains(description, "dividend"):
		return Dividend
	default:
		return Unknown
	}
}

// parseOptionDescription resolves an option description of the form
// "NVDA 6/20/2025 Call $120.00" into a contract identity. Descriptions in
// any other shape leave the event a plain equity event.
func parseOptionDescription(description string) (Contract, bool) {
	parts := strings.Fields(description)
	if len(parts) != 4 {
		return Contract{}, false
	}

	expiration, err := time.Parse(robinhoodDateFormat, parts[1])
	if err != nil {
		return Contract{}, false
	}

	var right Right
	switch strings.ToLower(parts[2]) {
	case "call":
		right = Call
	case "put":
		right = Put
	default:
		return Contract{}, false
	}

	strike, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(parts[3]), "$"))
	if err != nil {
		return Contract{}, false
	}

	return Contract{
		Underlying: parts[0],
		Expiration: NewDate(expiration.Date()),
		Strike:     USD(strike),
		Right:      right,
	}, true
}
