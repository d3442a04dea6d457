// Package feed decodes exchange-specific wire messages into order book
// levels and folds them into a summary.Book. Nothing in the orderbook or
// summary packages knows that Binance or Bitstamp exist; that knowledge
// lives entirely here.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/saiputravu/topbook/internal/orderbook"
	"github.com/saiputravu/topbook/internal/summary"
)

// Sentinel causes an Adapter can attribute a rejection to, via AdapterError.
var (
	ErrMalformedMessage = errors.New("malformed exchange message")
	ErrUnknownEvent     = errors.New("unrecognized event shape")
)

// AdapterError names which exchange and sentinel a message was rejected for,
// and keeps the underlying decode error in Cause. Unwrap returns the
// Sentinel, so errors.Is matches the sentinel; Cause appears only in Error().
type AdapterError struct {
	Exchange summary.Exchange
	Sentinel error
	Cause    error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Exchange, e.Sentinel, e.Cause)
}

func (e *AdapterError) Unwrap() error {
	return e.Sentinel
}

// Kind distinguishes a full order book snapshot from an incremental diff.
type Kind int

const (
	// Snapshot replaces the exchange's current books outright.
	Snapshot Kind = iota
	// Diff is folded onto the exchange's last known books via Book.Update.
	Diff
)

// Event is one decoded exchange message, not yet applied to any book.
type Event struct {
	Kind Kind
	Bids []orderbook.Order
	Asks []orderbook.Order
}

// Adapter turns one exchange's raw wire messages into Events.
type Adapter interface {
	Exchange() summary.Exchange
	Decode(raw []byte) (Event, error)
}

// wireLevel is the [price, amount] string-pair shape both Binance and
// Bitstamp use for individual book levels, e.g. ["0.0024", "10"].
type wireLevel struct {
	price  float64
	amount float64
}

func (l *wireLevel) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	price, err := strconv.ParseFloat(pair[0], 64)
	if err != nil {
		return fmt.Errorf("price %q: %w", pair[0], err)
	}
	amount, err := strconv.ParseFloat(pair[1], 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", pair[1], err)
	}
	l.price, l.amount = price, amount
	return nil
}

func ordersFromLevels(levels []wireLevel) ([]orderbook.Order, error) {
	out := make([]orderbook.Order, 0, len(levels))
	for _, l := range levels {
		p, err := orderbook.NewPrice(l.price)
		if err != nil {
			return nil, err
		}
		a, err := orderbook.NewAmount(l.amount)
		if err != nil {
			return nil, err
		}
		out = append(out, orderbook.NewOrder(p, a))
	}
	return out, nil
}
