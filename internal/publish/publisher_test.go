package publish

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiputravu/topbook/internal/orderbook"
	"github.com/saiputravu/topbook/internal/summary"
)

func order(t *testing.T, price, amount float64) orderbook.Order {
	t.Helper()
	p, err := orderbook.NewPrice(price)
	require.NoError(t, err)
	a, err := orderbook.NewAmount(amount)
	require.NoError(t, err)
	return orderbook.NewOrder(p, a)
}

func TestServer_SubscribeReceivesBroadcast(t *testing.T) {
	book := summary.NewBook()
	bids, err := orderbook.NewBook[orderbook.Bid]([]orderbook.Order{order(t, 100, 1)})
	require.NoError(t, err)
	asks, err := orderbook.NewBook[orderbook.Ask]([]orderbook.Order{order(t, 101, 1)})
	require.NoError(t, err)
	require.NoError(t, book.Reset(summary.Binance, bids, asks))

	s := NewServer(book, 10*time.Millisecond)
	_, ch := s.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case snap := <-ch:
		require.Len(t, snap.Bids, 1)
		assert.Equal(t, 100.0, snap.Bids[0].Order.Price().Float64())
		assert.InDelta(t, -1.0, snap.Spread, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	cancel()
	<-done
}

func TestServer_Unsubscribe_ClosesChannel(t *testing.T) {
	book := summary.NewBook()
	s := NewServer(book, time.Hour)

	id, ch := s.Subscribe()
	s.Unsubscribe(id)

	_, ok := <-ch
	assert.False(t, ok)
}

func TestServer_Unsubscribe_UnknownIsNoop(t *testing.T) {
	book := summary.NewBook()
	s := NewServer(book, time.Hour)
	s.Unsubscribe(uuid.New())
}

func TestServer_Broadcast_SpreadNaNWhenEmpty(t *testing.T) {
	book := summary.NewBook()
	s := NewServer(book, time.Hour)
	s.broadcast()
	_, ch := s.Subscribe()
	s.broadcast()
	snap := <-ch
	assert.True(t, math.IsNaN(snap.Spread))
}
