package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiputravu/topbook/internal/summary"
)

func TestBitstampAdapter_DecodesSnapshot(t *testing.T) {
	json := `{
		"data": {
			"bids": [["0.0024", "10"], ["0.0020", "5"]],
			"asks": [["0.0026", "100"]],
			"timestamp": "1234567890",
			"microtimestamp": "1234567890123456"
		},
		"channel": "diff_order_book_btcusd",
		"event": "data"
	}`

	event, err := BitstampAdapter{}.Decode([]byte(json))
	require.NoError(t, err)
	assert.Equal(t, Snapshot, event.Kind)
	require.Len(t, event.Bids, 2)
	assert.Equal(t, 0.0024, event.Bids[0].Price().Float64())
	require.Len(t, event.Asks, 1)
}

func TestBitstampAdapter_RejectsNonDataEvent(t *testing.T) {
	json := `{"event": "bts:subscription_succeeded", "channel": "diff_order_book_btcusd", "data": {}}`

	_, err := BitstampAdapter{}.Decode([]byte(json))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestBitstampAdapter_Exchange(t *testing.T) {
	assert.Equal(t, summary.Bitstamp, BitstampAdapter{}.Exchange())
}
