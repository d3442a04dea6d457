package orderbook

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice_Invalid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -0.1, -1, minNormalFloat64 / 2} {
		_, err := NewPrice(v)
		assert.ErrorIs(t, err, ErrInvalidPrice, "value %v should be rejected", v)
	}
}

func TestNewPrice_Valid(t *testing.T) {
	p, err := NewPrice(0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, p.Float64())
}

func TestPrice_Compare(t *testing.T) {
	a, _ := NewPrice(0.1)
	b, _ := NewPrice(0.2)
	assert.Less(t, a.Float64(), b.Float64())
}

func TestNewAmount_Invalid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.1, minNormalFloat64 / 2} {
		_, err := NewAmount(v)
		assert.ErrorIs(t, err, ErrInvalidAmount, "value %v should be rejected", v)
	}
}

func TestNewAmount_ZeroIsValid(t *testing.T) {
	a, err := NewAmount(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Float64())
}

func TestNewAmount_Valid(t *testing.T) {
	a, err := NewAmount(0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, a.Float64())
}

func TestOrder_IsEmpty(t *testing.T) {
	p, _ := NewPrice(1)
	zero, _ := NewAmount(0)
	nonzero, _ := NewAmount(1)

	assert.True(t, NewOrder(p, zero).IsEmpty())
	assert.False(t, NewOrder(p, nonzero).IsEmpty())
}

func mustOrder(t *testing.T, price, amount float64) Order {
	t.Helper()
	p, err := NewPrice(price)
	require.NoError(t, err)
	a, err := NewAmount(amount)
	require.NoError(t, err)
	return NewOrder(p, a)
}
