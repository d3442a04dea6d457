// Package publish fans the aggregated order book out to subscribers on a
// fixed tick, bounding the fan-out concurrency with a worker pool the same
// way the collaborator it's adapted from bounds its own connection handlers.
package publish

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/topbook/internal/summary"
	"github.com/saiputravu/topbook/internal/workerpool"
)

const defaultFanoutWorkers = 10

// Snapshot is one published view of the aggregated book.
type Snapshot struct {
	Bids   []summary.SummaryOrder
	Asks   []summary.SummaryOrder
	Spread float64
}

type subscriber struct {
	id uuid.UUID
	ch chan Snapshot
}

// Server periodically snapshots a summary.Book and pushes the result to
// every subscriber. Subscribers that can't keep up have their snapshot
// dropped rather than blocking the broadcast.
type Server struct {
	book     *summary.Book
	interval time.Duration
	pool     *workerpool.Pool
	cancel   context.CancelFunc

	mu   sync.Mutex
	subs *btree.BTreeG[*subscriber]
}

// NewServer returns a Server that snapshots book every interval.
func NewServer(book *summary.Book, interval time.Duration) *Server {
	return &Server{
		book:     book,
		interval: interval,
		pool:     workerpool.New(defaultFanoutWorkers),
		subs: btree.NewBTreeG(func(a, b *subscriber) bool {
			return a.id.String() < b.id.String()
		}),
	}
}

// Subscribe registers a new subscriber and returns its id and the channel it
// will receive Snapshots on. The channel is buffered to one slot: while that
// slot is full, newer snapshots are dropped, so a slow subscriber next sees
// the oldest snapshot it hasn't consumed yet.
func (s *Server) Subscribe() (uuid.UUID, <-chan Snapshot) {
	sub := &subscriber{id: uuid.New(), ch: make(chan Snapshot, 1)}

	s.mu.Lock()
	s.subs.Set(sub)
	s.mu.Unlock()

	return sub.id, sub.ch
}

// Unsubscribe removes a subscriber and closes its channel. Unsubscribing an
// unknown id is a no-op.
func (s *Server) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs.Get(&subscriber{id: id})
	if !ok {
		return
	}
	s.subs.Delete(sub)
	close(sub.ch)
}

// Shutdown stops a running Server.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		log.Info().Msg("publisher shutting down")
		s.cancel()
	}
}

// Run broadcasts a snapshot to every subscriber on every tick of interval,
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	t.Go(func() error {
		for {
			select {
			case <-t.Dying():
				return nil
			case <-ticker.C:
				s.broadcast()
			}
		}
	})

	<-t.Dead()
	if err := t.Err(); err != nil && err != tomb.ErrStillAlive {
		log.Error().Err(err).Msg("publisher stopped with error")
	}
}

func (s *Server) broadcast() {
	bids := slices.Collect(s.book.Bids())
	asks := slices.Collect(s.book.Asks())
	snap := Snapshot{
		Bids:   bids,
		Asks:   asks,
		Spread: summary.Spread(slices.Values(bids), slices.Values(asks)),
	}

	subs := s.snapshotSubscribers()
	workerpool.Broadcast(s.pool, subs, func(sub *subscriber) {
		select {
		case sub.ch <- snap:
		default:
			log.Warn().Str("subscriber", sub.id.String()).Msg("dropping snapshot, subscriber is not keeping up")
		}
	})
}

func (s *Server) snapshotSubscribers() []*subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*subscriber, 0, s.subs.Len())
	s.subs.Scan(func(sub *subscriber) bool {
		out = append(out, sub)
		return true
	})
	return out
}
