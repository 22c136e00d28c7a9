package pnl

// Lot is a discrete batch of shares or contracts opened at a specific price
// and date. It is a value copied from the opening event: consuming a lot
// never touches the TradeEvent it was forked from.
//
// A partially consumed lot keeps its original open date. It is not re-dated,
// so it stays ahead of every lot opened later.
type Lot struct {
	Open      Date     // open date, the FIFO ordering key
	Remaining Quantity // decreases on consumption, never negative
	Price     Money    // per-share cost, or per-contract premium, fixed at open
}

// lotQueue is a FIFO queue of open lots ordered by open date.
//
// Events arrive in chronological order, so appending preserves FIFO order by
// construction. Partial consumption mutates the front lot in place at its
// existing queue position; order is an invariant of position, not of sort keys.
type lotQueue struct {
	lots []Lot
}

func (q *lotQueue) push(l Lot) { q.lots = append(q.lots, l) }

// front returns the oldest open lot, or nil if the queue is empty.
func (q *lotQueue) front() *Lot {
	if len(q.lots) == 0 {
		return nil
	}
	return &q.lots[0]
}

// pop removes and returns the oldest open lot. It must not be called on an
// empty queue.
func (q *lotQueue) pop() Lot {
	l := q.lots[0]
	q.lots = q.lots[1:]
	return l
}

func (q *lotQueue) empty() bool { return len(q.lots) == 0 }

func (q *lotQueue) len() int { return len(q.lots) }

// drain removes every lot from the queue and returns them in order.
func (q *lotQueue) drain() []Lot {
	drained := q.lots
	q.lots = nil
	return drained
}

// snapshot returns a copy of the open lots in FIFO order.
func (q *lotQueue) snapshot() []Lot {
	out := make([]Lot, len(q.lots))
	copy(out, q.lots)
	return out
}

// openLot forks a new lot from an opening event.
func openLot(ev TradeEvent) Lot {
	return Lot{Open: ev.Date, Remaining: ev.Quantity, Price: ev.Price}
}
