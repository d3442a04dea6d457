package orderbook

import "fmt"

// Order is a (Price, Amount) pair. It compares by Price alone when sorted;
// Amount just rides along as payload. An Order built from a valid Price and
// Amount is unconditionally valid - there is no second validation pass.
type Order struct {
	price  Price
	amount Amount
}

// NewOrder pairs an already-validated Price and Amount.
func NewOrder(price Price, amount Amount) Order {
	return Order{price: price, amount: amount}
}

func (o Order) Price() Price   { return o.price }
func (o Order) Amount() Amount { return o.amount }

// IsEmpty reports whether this order's amount is exactly +0, i.e. whether it
// encodes a deletion inside a Diff.
func (o Order) IsEmpty() bool {
	return o.amount.v == 0
}

func (o Order) String() string {
	return fmt.Sprintf("(%v, %v)", o.price, o.amount)
}
