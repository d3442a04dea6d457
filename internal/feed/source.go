package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/saiputravu/topbook/internal/summary"
)

const (
	readTimeout  = 30 * time.Second
	reconnectGap = 2 * time.Second
)

// WebsocketSource dials url and pushes every message it receives onto
// the returned channel until ctx is cancelled. It reconnects on any read or
// dial error after a short pause; that reconnect loop is the adapter-level
// retry the dispatcher itself deliberately does not do.
func WebsocketSource(ctx context.Context, exchange summary.Exchange, url string) <-chan []byte {
	out := make(chan []byte, 64)

	go func() {
		defer close(out)
		for ctx.Err() == nil {
			if err := streamOnce(ctx, url, out); err != nil {
				log.Warn().Err(err).Str("exchange", exchange.String()).Str("url", url).Msg("feed connection dropped, reconnecting")
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectGap):
			}
		}
	}()

	return out
}

func streamOnce(ctx context.Context, url string, out chan<- []byte) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
