package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/topbook/internal/feed"
	"github.com/saiputravu/topbook/internal/publish"
	"github.com/saiputravu/topbook/internal/summary"
)

func main() {
	binanceURL := flag.String("binance-url", "wss://stream.binance.com:9443/ws/bnbbtc@depth", "Binance depth-diff websocket stream")
	bitstampURL := flag.String("bitstamp-url", "wss://ws.bitstamp.net", "Bitstamp websocket endpoint")
	publishEvery := flag.Duration("publish-interval", time.Second, "how often to broadcast the aggregated book")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	book := summary.NewBook()

	t, ctx := tomb.WithContext(ctx)
	dispatcher := feed.NewDispatcher(book)
	dispatcher.Run(t, map[summary.Exchange]<-chan []byte{
		summary.Binance:  feed.WebsocketSource(ctx, summary.Binance, *binanceURL),
		summary.Bitstamp: feed.WebsocketSource(ctx, summary.Bitstamp, *bitstampURL),
	})

	server := publish.NewServer(book, *publishEvery)
	go server.Run(ctx)

	log.Info().Msg("topbookd running")
	<-ctx.Done()

	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("feed dispatcher stopped with error")
	}
}
