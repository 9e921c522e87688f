package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWorkers is the size of the dispatch worker pool.
const DefaultWorkers = 8

// Handler processes one request payload and produces the reply payload.
type Handler interface {
	Handle(ctx context.Context, payload []byte) []byte
}

// request pairs one inbound payload with the channel its reply is routed
// back on. The reply channel is buffered so a worker never blocks on a
// caller that has already given up.
type request struct {
	id      string
	payload []byte
	reply   chan []byte
}

// Broker fans inbound requests out to a fixed pool of long-lived workers
// and routes each reply back to the originating caller. It carries no
// business logic.
type Broker struct {
	handler  Handler
	workers  int
	logger   *slog.Logger
	requests chan request
}

// NewBroker creates a broker over the given handler. A non-positive worker
// count falls back to DefaultWorkers.
func NewBroker(handler Handler, workers int, logger *slog.Logger) *Broker {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Broker{
		handler:  handler,
		workers:  workers,
		logger:   logger.With(slog.String("component", "broker")),
		requests: make(chan request),
	}
}

// Run starts the worker pool and blocks until ctx is cancelled and every
// worker has returned.
func (b *Broker) Run(ctx context.Context) {
	b.logger.Info("broker started", slog.Int("workers", b.workers))

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			b.work(ctx, worker)
		}(i)
	}
	wg.Wait()

	b.logger.Info("broker stopped")
}

func (b *Broker) work(ctx context.Context, worker int) {
	logger := b.logger.With(slog.Int("worker", worker))

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-b.requests:
			start := time.Now()
			req.reply <- b.handler.Handle(ctx, req.payload)
			logger.Debug("request handled",
				slog.String("request_id", req.id),
				slog.Duration("duration", time.Since(start)))
		}
	}
}

// Submit hands one request to an idle worker and waits for its reply. It
// returns the context error if the broker is shutting down or the caller's
// context ends first.
func (b *Broker) Submit(ctx context.Context, payload []byte) ([]byte, error) {
	req := request{
		id:      uuid.NewString(),
		payload: payload,
		reply:   make(chan []byte, 1),
	}

	select {
	case b.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case reply := <-req.reply:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
