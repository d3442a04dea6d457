package feed

import (
	"sync"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/topbook/internal/orderbook"
	"github.com/saiputravu/topbook/internal/summary"
)

type exchangeState struct {
	bids orderbook.Book[orderbook.Bid]
	asks orderbook.Book[orderbook.Ask]
}

// Dispatcher keeps each exchange's last known books and folds incoming
// Events into them, publishing the result into a summary.Book after every
// message. It does not own any connections - Run just drains channels
// someone else fills.
type Dispatcher struct {
	book *summary.Book

	mu    sync.Mutex
	state map[summary.Exchange]*exchangeState
}

// NewDispatcher returns a Dispatcher that publishes into book.
func NewDispatcher(book *summary.Book) *Dispatcher {
	return &Dispatcher{
		book:  book,
		state: make(map[summary.Exchange]*exchangeState),
	}
}

// Ingest decodes raw with adapter, folds the result into that exchange's
// last known books, and resets the summary book. A decode failure is
// returned to the caller as the adapter produced it, and a Book/Diff
// validation failure is returned wrapped in an AdapterError with
// ErrMalformedMessage; Ingest does not retry.
func (d *Dispatcher) Ingest(adapter Adapter, raw []byte) error {
	ex := adapter.Exchange()
	event, err := adapter.Decode(raw)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.state[ex]
	if !ok {
		st = &exchangeState{}
		d.state[ex] = st
	}

	switch event.Kind {
	case Snapshot:
		bids, err := orderbook.NewBook[orderbook.Bid](event.Bids)
		if err != nil {
			return &AdapterError{Exchange: ex, Sentinel: ErrMalformedMessage, Cause: err}
		}
		asks, err := orderbook.NewBook[orderbook.Ask](event.Asks)
		if err != nil {
			return &AdapterError{Exchange: ex, Sentinel: ErrMalformedMessage, Cause: err}
		}
		st.bids, st.asks = bids, asks
	case Diff:
		bidsDiff, err := orderbook.NewDiff[orderbook.Bid](event.Bids)
		if err != nil {
			return &AdapterError{Exchange: ex, Sentinel: ErrMalformedMessage, Cause: err}
		}
		asksDiff, err := orderbook.NewDiff[orderbook.Ask](event.Asks)
		if err != nil {
			return &AdapterError{Exchange: ex, Sentinel: ErrMalformedMessage, Cause: err}
		}
		st.bids = st.bids.Update(bidsDiff)
		st.asks = st.asks.Update(asksDiff)
	}

	return d.book.Reset(ex, st.bids, st.asks)
}

// Run spawns one goroutine per source channel that decodes every message it
// receives with the matching adapter and feeds it to Ingest. A rejected
// message is logged at Warn and skipped; recovering the upstream connection
// is the source's job, not the dispatcher's.
func (d *Dispatcher) Run(t *tomb.Tomb, sources map[summary.Exchange]<-chan []byte) {
	adapters := map[summary.Exchange]Adapter{
		summary.Binance:  BinanceAdapter{},
		summary.Bitstamp: BitstampAdapter{},
	}

	for exchange, ch := range sources {
		adapter, ok := adapters[exchange]
		if !ok {
			continue
		}
		t.Go(func() error {
			for {
				select {
				case <-t.Dying():
					return nil
				case raw, ok := <-ch:
					if !ok {
						return nil
					}
					if err := d.Ingest(adapter, raw); err != nil {
						log.Warn().Err(err).Str("exchange", adapter.Exchange().String()).Msg("dropping feed message")
					}
				}
			}
		})
	}
}
