package feed

import (
	"encoding/json"
	"fmt"

	"github.com/saiputravu/topbook/internal/summary"
)

// binanceEnvelope peeks at the "e" field combined websocket streams tag
// their payloads with; a depth snapshot fetched over REST carries no such
// field at all.
type binanceEnvelope struct {
	EventType string `json:"e"`
}

type binanceDepthUpdate struct {
	EventTime     uint64      `json:"E"`
	Symbol        string      `json:"s"`
	FirstUpdateID uint64      `json:"U"`
	FinalUpdateID uint64      `json:"u"`
	Bids          []wireLevel `json:"b"`
	Asks          []wireLevel `json:"a"`
}

type binanceSnapshot struct {
	LastUpdateID uint64      `json:"lastUpdateId"`
	Bids         []wireLevel `json:"bids"`
	Asks         []wireLevel `json:"asks"`
}

// BinanceAdapter decodes Binance's combined-stream depthUpdate diffs and its
// REST /depth snapshot payload.
type BinanceAdapter struct{}

func (BinanceAdapter) Exchange() summary.Exchange {
	return summary.Binance
}

func (a BinanceAdapter) Decode(raw []byte) (Event, error) {
	var env binanceEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}

	switch env.EventType {
	case "depthUpdate":
		return a.decodeDepthUpdate(raw)
	case "":
		return a.decodeSnapshot(raw)
	default:
		return Event{}, &AdapterError{
			Exchange: summary.Binance,
			Sentinel: ErrUnknownEvent,
			Cause:    fmt.Errorf("event type %q", env.EventType),
		}
	}
}

func (a BinanceAdapter) decodeDepthUpdate(raw []byte) (Event, error) {
	var diff binanceDepthUpdate
	if err := json.Unmarshal(raw, &diff); err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	bids, err := ordersFromLevels(diff.Bids)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	asks, err := ordersFromLevels(diff.Asks)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	return Event{Kind: Diff, Bids: bids, Asks: asks}, nil
}

func (a BinanceAdapter) decodeSnapshot(raw []byte) (Event, error) {
	var snap binanceSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	bids, err := ordersFromLevels(snap.Bids)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	asks, err := ordersFromLevels(snap.Asks)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Binance, Sentinel: ErrMalformedMessage, Cause: err}
	}
	return Event{Kind: Snapshot, Bids: bids, Asks: asks}, nil
}
