// Package orderbook holds the validated numeric primitives and the two
// quote-side book abstractions (Diff and Book) that the rest of the system
// is built on. Nothing in this package performs I/O, logs, or retries: every
// exported function is a pure function of its arguments.
package orderbook

import "errors"

// Sentinel errors returned by the primitive constructors. Wrapped with the
// rejected value via fmt.Errorf("%w: ...", ...) so callers can both
// errors.Is against the sentinel and recover the bad input for logging.
var (
	ErrInvalidPrice  = errors.New("invalid price")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Sentinel errors returned by the Diff/Book constructors.
var (
	// ErrHasOrderWithNotUniquePrice means two entries in the input share a price.
	ErrHasOrderWithNotUniquePrice = errors.New("order book has multiple orders with the same price")
	// ErrHasOrderWithEmptyAmount means a kept top-N level has amount 0; likely a
	// diff was fed in where a snapshot was expected.
	ErrHasOrderWithEmptyAmount = errors.New("order book has order with 0 amount")
	// ErrOrdersNotSortedAccordingToQuoteType means the input to a *Sorted
	// constructor violates the side's order.
	ErrOrdersNotSortedAccordingToQuoteType = errors.New("order book is not properly sorted")
)
