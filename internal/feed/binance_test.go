package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiputravu/topbook/internal/summary"
)

func TestBinanceAdapter_DecodesDepthUpdate(t *testing.T) {
	json := `{
		"e": "depthUpdate",
		"E": 123456789,
		"s": "BNBBTC",
		"U": 157,
		"u": 160,
		"b": [["0.0024", "10"]],
		"a": [["0.0026", "100"]]
	}`

	event, err := BinanceAdapter{}.Decode([]byte(json))
	require.NoError(t, err)
	assert.Equal(t, Diff, event.Kind)
	require.Len(t, event.Bids, 1)
	assert.Equal(t, 0.0024, event.Bids[0].Price().Float64())
	assert.Equal(t, 10.0, event.Bids[0].Amount().Float64())
	require.Len(t, event.Asks, 1)
	assert.Equal(t, 0.0026, event.Asks[0].Price().Float64())
}

func TestBinanceAdapter_DecodesSnapshot(t *testing.T) {
	json := `{ "lastUpdateId" : 160, "bids": [["0.0024", "10"]], "asks": [["0.0026", "100.1"]] }`

	event, err := BinanceAdapter{}.Decode([]byte(json))
	require.NoError(t, err)
	assert.Equal(t, Snapshot, event.Kind)
	require.Len(t, event.Asks, 1)
	assert.Equal(t, 100.1, event.Asks[0].Amount().Float64())
}

func TestBinanceAdapter_RejectsUnknownEventType(t *testing.T) {
	json := `{"e": "bookTicker", "s": "BNBBTC"}`

	_, err := BinanceAdapter{}.Decode([]byte(json))
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, summary.Binance, adapterErr.Exchange)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestBinanceAdapter_RejectsMalformedJSON(t *testing.T) {
	_, err := BinanceAdapter{}.Decode([]byte(`{"code": 0, "msg": "Unknown property"`))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestBinanceAdapter_RejectsInvalidPrice(t *testing.T) {
	json := `{"e": "depthUpdate", "b": [["0", "10"]], "a": []}`
	_, err := BinanceAdapter{}.Decode([]byte(json))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestBinanceAdapter_Exchange(t *testing.T) {
	assert.Equal(t, summary.Binance, BinanceAdapter{}.Exchange())
}
