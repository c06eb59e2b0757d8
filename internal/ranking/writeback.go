package ranking

import (
	"context"
	"log/slog"
	"sync"
)

type saveFunc func(context.Context, *Session) error

type saveRequest struct {
	session *Session
	ack     chan error
}

// saver serializes durable writes on a single worker goroutine. The duel loop
// updates in-memory state synchronously and hands a snapshot here, so a second
// decision arriving before the previous flush completes still operates on
// correct state, and writes for a session are never reordered.
type saver struct {
	save   saveFunc
	ch     chan saveRequest
	done   chan struct{}
	logger *slog.Logger

	mu      sync.Mutex
	lastErr error
}

func newSaver(save saveFunc, logger *slog.Logger) *saver {
	w := &saver{
		save:   save,
		ch:     make(chan saveRequest, 16),
		done:   make(chan struct{}),
		logger: logger,
	}
	go w.run()
	return w
}

func (w *saver) run() {
	defer close(w.done)
	for req := range w.ch {
		if req.session == nil {
			// Flush barrier: everything enqueued before it has been written.
			req.ack <- w.takeErr()
			continue
		}
		err := w.save(context.Background(), req.session)
		w.mu.Lock()
		w.lastErr = err
		w.mu.Unlock()
		if err != nil {
			w.logger.Warn("session flush failed; progress may not survive a crash",
				slog.String("session", req.session.ID), slog.Any("error", err))
		}
	}
}

// Enqueue queues a snapshot of the session for flushing. A failure from an
// earlier flush is returned (wrapped as ErrPersistence) exactly once; the
// snapshot queued here is itself the retry, since every flush writes the full
// record.
func (w *saver) Enqueue(session *Session) error {
	if session == nil {
		return nil
	}
	w.ch <- saveRequest{session: session.Clone()}
	if err := w.takeErr(); err != nil {
		return Wrap(ErrPersistence, "save session", session.ID, err)
	}
	return nil
}

// Flush blocks until every previously queued write has been attempted and
// returns the error of the most recent failed flush, if any.
func (w *saver) Flush() error {
	ack := make(chan error, 1)
	w.ch <- saveRequest{ack: ack}
	if err := <-ack; err != nil {
		return Wrap(ErrPersistence, "flush sessions", "", err)
	}
	return nil
}

// Close flushes and stops the worker.
func (w *saver) Close() error {
	err := w.Flush()
	close(w.ch)
	<-w.done
	return err
}

func (w *saver) takeErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.lastErr
	w.lastErr = nil
	return err
}
