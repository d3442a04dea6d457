// Package summary aggregates per-exchange order books into a single
// depth-capped top-of-book view, merging each exchange's best bids and asks
// into one combined ranking and exposing the combined spread.
package summary

import "fmt"

// Exchange identifies one of the upstream venues a Book aggregates. It is a
// closed enum: the only valid values are the named constants below.
type Exchange int

const (
	Binance Exchange = iota
	Bitstamp
)

// Exchanges lists every valid Exchange, in ascending ordinal order. Book
// seeds a slot for each of these so Bids/Asks never see a missing exchange.
var Exchanges = []Exchange{Binance, Bitstamp}

func (e Exchange) String() string {
	switch e {
	case Binance:
		return "binance"
	case Bitstamp:
		return "bitstamp"
	default:
		return fmt.Sprintf("exchange(%d)", int(e))
	}
}

// Valid reports whether e is one of the known enum members.
func (e Exchange) Valid() bool {
	return e == Binance || e == Bitstamp
}
