package orderbook

import (
	"fmt"
	"math"
)

// minNormalFloat64 is the smallest positive normal float64 (DBL_MIN, 2^-1022).
// Values strictly between 0 and this are subnormal.
const minNormalFloat64 = 0x1p-1022

func isSubnormal(v float64) bool {
	if v == 0 {
		return false
	}
	return math.Abs(v) < minNormalFloat64
}

// Price is a strictly positive, finite, non-subnormal real. Once constructed
// it is known-valid; nothing downstream re-checks it.
type Price struct {
	v float64
}

// NewPrice validates v and wraps it as a Price. It rejects NaN, +-Inf, zero,
// negative, and subnormal values.
func NewPrice(v float64) (Price, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || isSubnormal(v) {
		return Price{}, fmt.Errorf("%w: %v", ErrInvalidPrice, v)
	}
	return Price{v: v}, nil
}

// Float64 returns the validated underlying value.
func (p Price) Float64() float64 {
	return p.v
}

func (p Price) String() string {
	return fmt.Sprintf("$%v", p.v)
}
