package summary

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"sync"

	"github.com/tidwall/btree"

	"github.com/saiputravu/topbook/internal/orderbook"
)

// ErrUnknownExchange is returned by Reset when asked to store books for an
// Exchange value outside the closed enum.
var ErrUnknownExchange = errors.New("unknown exchange")

// SummaryOrder is one level of a merged, cross-exchange ranking: the order
// itself plus which exchange it came from.
type SummaryOrder struct {
	Exchange Exchange
	Order    orderbook.Order
}

// slot holds one exchange's most recently received books. Reset replaces the
// whole slot with a new pointer rather than mutating fields in place, so a
// reader holding a slice from a prior snapshot never observes a half-updated
// exchange.
type slot struct {
	exchange Exchange
	bids     orderbook.Book[orderbook.Bid]
	asks     orderbook.Book[orderbook.Ask]
}

// Book merges the most recent per-exchange books into one combined,
// depth-capped top-of-book ranking. It is safe for concurrent use: Reset is
// typically called from one feed goroutine per exchange, Bids/Asks from
// whatever serves the aggregate out.
type Book struct {
	mu   sync.Mutex
	data *btree.BTreeG[*slot]
}

// NewBook returns a Book pre-seeded with an empty slot for every known
// Exchange, so Bids/Asks never have to special-case an exchange that hasn't
// reported in yet.
func NewBook() *Book {
	data := btree.NewBTreeG(func(a, b *slot) bool {
		return a.exchange < b.exchange
	})
	for _, ex := range Exchanges {
		data.Set(&slot{exchange: ex})
	}
	return &Book{data: data}
}

// Reset replaces exchange's bid and ask books wholesale. It is the only
// mutating operation on Book. Resetting an Exchange outside the closed enum
// is rejected rather than silently growing the tree with a slot Bids/Asks
// will never scan.
func (b *Book) Reset(exchange Exchange, bids orderbook.Book[orderbook.Bid], asks orderbook.Book[orderbook.Ask]) error {
	if !exchange.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownExchange, exchange)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Set(&slot{exchange: exchange, bids: bids, asks: asks})
	return nil
}

// snapshot copies out the current slot pointers under lock. Because Reset
// always installs a fresh slot rather than mutating one in place, the
// snapshot can be merged outside the lock without risk of a torn read.
func (b *Book) snapshot() []*slot {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*slot, 0, b.data.Len())
	b.data.Scan(func(s *slot) bool {
		out = append(out, s)
		return true
	})
	return out
}

type cursor struct {
	exchange Exchange
	orders   []orderbook.Order
	idx      int
}

// betterBid reports whether a outranks b on the bid side: higher price
// first, then higher amount.
func betterBid(a, b orderbook.Order) bool {
	if a.Price().Float64() != b.Price().Float64() {
		return a.Price().Float64() > b.Price().Float64()
	}
	return a.Amount().Float64() > b.Amount().Float64()
}

// betterAsk reports whether a outranks b on the ask side: lower price first,
// then higher amount.
func betterAsk(a, b orderbook.Order) bool {
	if a.Price().Float64() != b.Price().Float64() {
		return a.Price().Float64() < b.Price().Float64()
	}
	return a.Amount().Float64() > b.Amount().Float64()
}

// merge does an E-way linear merge over per-exchange order slices, ranking
// by better, and stops after Depth levels. Cursors are scanned in ascending
// exchange order and the running best only changes on a strict improvement,
// so ties resolve in favor of the lower exchange ordinal without that rule
// being encoded in better itself.
func merge(cursors []*cursor, better func(a, b orderbook.Order) bool) iter.Seq[SummaryOrder] {
	return func(yield func(SummaryOrder) bool) {
		emitted := 0
		for emitted < orderbook.Depth {
			bestIdx := -1
			for i, c := range cursors {
				if c.idx >= len(c.orders) {
					continue
				}
				if bestIdx == -1 || better(c.orders[c.idx], cursors[bestIdx].orders[cursors[bestIdx].idx]) {
					bestIdx = i
				}
			}
			if bestIdx == -1 {
				return
			}
			c := cursors[bestIdx]
			order := c.orders[c.idx]
			c.idx++
			if !yield(SummaryOrder{Exchange: c.exchange, Order: order}) {
				return
			}
			emitted++
		}
	}
}

// Bids returns the combined bid ranking across every exchange, best first,
// capped at orderbook.Depth levels. It is lazy: nothing is computed beyond
// what the caller actually ranges over.
func (b *Book) Bids() iter.Seq[SummaryOrder] {
	slots := b.snapshot()
	cursors := make([]*cursor, 0, len(slots))
	for _, s := range slots {
		if s.bids.Len() == 0 {
			continue
		}
		cursors = append(cursors, &cursor{exchange: s.exchange, orders: s.bids.Orders()})
	}
	return merge(cursors, betterBid)
}

// Asks returns the combined ask ranking across every exchange, best first,
// capped at orderbook.Depth levels.
func (b *Book) Asks() iter.Seq[SummaryOrder] {
	slots := b.snapshot()
	cursors := make([]*cursor, 0, len(slots))
	for _, s := range slots {
		if s.asks.Len() == 0 {
			continue
		}
		cursors = append(cursors, &cursor{exchange: s.exchange, orders: s.asks.Orders()})
	}
	return merge(cursors, betterAsk)
}

// Spread returns the combined best bid minus the combined best ask, so a
// positive value flags a crossed market. A missing ask side (no asks to
// compare against a real bid) is +Inf, a missing bid side is -Inf, and
// both sides missing is NaN.
func Spread(bids, asks iter.Seq[SummaryOrder]) float64 {
	var bestBid, bestAsk orderbook.Order
	haveBid, haveAsk := false, false

	for so := range bids {
		bestBid = so.Order
		haveBid = true
		break
	}
	for so := range asks {
		bestAsk = so.Order
		haveAsk = true
		break
	}

	switch {
	case !haveBid && !haveAsk:
		return math.NaN()
	case haveBid && !haveAsk:
		return math.Inf(1)
	case !haveBid && haveAsk:
		return math.Inf(-1)
	default:
		return bestBid.Price().Float64() - bestAsk.Price().Float64()
	}
}
