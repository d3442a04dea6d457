package orderbook

// Side is a compile-time tag selecting sort direction for Diff/Book. It is
// sealed to Ask and Bid: the methods are unexported so no type outside this
// package can implement it, and generic code parameterized on a Side never
// branches on a runtime value to pick a comparator.
type Side interface {
	less(a, b Price) bool
	quote() string
}

// Ask orders rank best-price-first ascending (lowest price first).
type Ask struct{}

func (Ask) less(a, b Price) bool { return a.v < b.v }
func (Ask) quote() string        { return "ask" }

// Bid orders rank best-price-first descending (highest price first).
type Bid struct{}

func (Bid) less(a, b Price) bool { return a.v > b.v }
func (Bid) quote() string        { return "bid" }
