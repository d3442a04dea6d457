package feed

import (
	"encoding/json"

	"github.com/saiputravu/topbook/internal/summary"
)

// bitstampMessage is the envelope Bitstamp's Pusher-based websocket wraps
// every channel message in.
type bitstampMessage struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel"`
	Data    bitstampPayload `json:"data"`
}

// bitstampPayload is the body of a diff_order_book_<pair> message. Despite
// the channel name, each message is a full top-of-book snapshot rather than
// an incremental diff - Bitstamp pushes the whole book every tick.
type bitstampPayload struct {
	Bids           []wireLevel `json:"bids"`
	Asks           []wireLevel `json:"asks"`
	Timestamp      string      `json:"timestamp"`
	Microtimestamp string      `json:"microtimestamp"`
}

// BitstampAdapter decodes diff_order_book_<pair> messages. Every message is
// treated as a full snapshot; there is no incremental-apply path for this
// exchange.
type BitstampAdapter struct{}

func (BitstampAdapter) Exchange() summary.Exchange {
	return summary.Bitstamp
}

func (a BitstampAdapter) Decode(raw []byte) (Event, error) {
	var msg bitstampMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Event{}, &AdapterError{Exchange: summary.Bitstamp, Sentinel: ErrMalformedMessage, Cause: err}
	}
	if msg.Event != "data" {
		return Event{}, &AdapterError{Exchange: summary.Bitstamp, Sentinel: ErrUnknownEvent, Cause: errUnhandledEvent(msg.Event)}
	}

	bids, err := ordersFromLevels(msg.Data.Bids)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Bitstamp, Sentinel: ErrMalformedMessage, Cause: err}
	}
	asks, err := ordersFromLevels(msg.Data.Asks)
	if err != nil {
		return Event{}, &AdapterError{Exchange: summary.Bitstamp, Sentinel: ErrMalformedMessage, Cause: err}
	}
	return Event{Kind: Snapshot, Bids: bids, Asks: asks}, nil
}

type errUnhandledEvent string

func (e errUnhandledEvent) Error() string {
	return "unhandled bitstamp event: " + string(e)
}
