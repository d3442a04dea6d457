package orderbook

import (
	"fmt"
	"math"
)

// Amount is a non-negative, finite real. Zero is valid here (it encodes "remove
// this level" inside a Diff) even though a Book may never hold an empty order.
type Amount struct {
	v float64
}

// NewAmount validates v and wraps it as an Amount. It rejects NaN, +-Inf,
// negative values, and subnormals other than +0.
func NewAmount(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (v != 0 && isSubnormal(v)) {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return Amount{v: v}, nil
}

// Float64 returns the validated underlying value.
func (a Amount) Float64() float64 {
	return a.v
}

func (a Amount) String() string {
	return fmt.Sprintf("%v", a.v)
}
