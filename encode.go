package pnl

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file handles the normalized event stream format: a JSONL file, one
// event per line, dates as ISO-8601 strings and numbers as bare decimals.
// It lets the CLI import a broker export once and replay the normalized
// ledger on every subsequent run.

// jsonContract is the wire shape of an option contract identity.
type jsonContract struct {
	Underlying string          `json:"underlying"`
	Expiration Date            `json:"expiration"`
	Strike     decimal.Decimal `json:"strike"`
	Right      string          `json:"right"`
}

// EncodeEvents writes trade events to w in the normalized JSONL format.
func EncodeEvents(w io.Writer, events []TradeEvent) error {
	for _, ev := range events {
		data, err := json.Marshal(eventToJSON(ev))
		if err != nil {
			return fmt.Errorf("cannot marshal event %s %s on %s: %w", ev.Kind, ev.Symbol, ev.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write event stream: %w", err)
		}
	}
	return nil
}

// DecodeEvents reads trade events from a JSONL stream, in file order. The
// engine expects the file to be chronologically ordered, which is what
// EncodeEvents produces when fed a broker parse.
func DecodeEvents(r io.Reader) ([]TradeEvent, error) {
	var events []TradeEvent
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := eventFromJSON(line)
		if err != nil {
			return nil, fmt.Errorf("cannot parse line %q: %w", string(line), err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read event stream: %w", err)
	}
	return events, nil
}

func eventToJSON(ev TradeEvent) any {
	type wire struct {
		Date     Date            `json:"date"`
		Symbol   string          `json:"symbol,omitempty"`
		Kind     string          `json:"kind"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency,omitempty"`
		Note     string          `json:"note,omitempty"`
		Option   *jsonContract   `json:"option,omitempty"`
	}
	out := wire{
		Date:     ev.Date,
		Symbol:   ev.Symbol,
		Kind:     ev.Kind.String(),
		Quantity: ev.Quantity,
		Price:    ev.Price.Decimal(),
		Amount:   ev.Amount.Decimal(),
		Currency: ev.Price.Currency(),
		Note:     ev.Note,
	}
	if ev.Option != nil {
		out.Option = &jsonContract{
			Underlying: ev.Option.Underlying,
			Expiration: ev.Option.Expiration,
			Strike:     ev.Option.Strike.Decimal(),
			Right:      ev.Option.Right.String(),
		}
	}
	return out
}

func eventFromJSON(line []byte) (TradeEvent, error) {
	var in struct {
		Date     Date            `json:"date"`
		Symbol   string          `json:"symbol"`
		Kind     string          `json:"kind"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Note     string          `json:"note"`
		Option   *jsonContract   `json:"option"`
	}
	if err := json.Unmarshal(line, &in); err != nil {
		return TradeEvent{}, err
	}
	kind, err := ParseEventKind(in.Kind)
	if err != nil {
		return TradeEvent{}, err
	}

	ev := TradeEvent{
		Date:     in.Date,
		Symbol:   in.Symbol,
		Kind:     kind,
		Quantity: in.Quantity,
		Price:    M(in.Price, in.Currency),
		Amount:   M(in.Amount, in.Currency),
		Note:     in.Note,
	}
	if in.Option != nil {
		right, err := ParseRight(in.Option.Right)
		if err != nil {
			return TradeEvent{}, err
		}
		ev.Option = &Contract{
			Underlying: in.Option.Underlying,
			Expiration: in.Option.Expiration,
			Strike:     M(in.Option.Strike, in.Currency),
			Right:      right,
		}
	}
	return ev, nil
}
