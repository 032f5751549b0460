// Package background runs record delivery off the completing goroutine so a
// slow logger never blocks span completion.
package background

import (
	"context"
	"errors"

	"github.com/spanlog/spanlog-go/internal/xerrors"
	"github.com/spanlog/spanlog-go/internal/xsync"
)

var ErrAlreadyClosed = errors.New("spanlog: background worker already closed")

// A Worker must not be copied after first use
type Worker struct {
	m       xsync.Mutex
	tasks   chan task
	drained chan struct{}
	closed  bool
}

type task struct {
	name string
	f    func()
}

// NewWorker starts a single delivery goroutine with a bounded queue.
func NewWorker(queue int) *Worker {
	w := &Worker{
		tasks:   make(chan task, queue),
		drained: make(chan struct{}),
	}
	go w.run()

	return w
}

func (w *Worker) run() {
	defer close(w.drained)
	for t := range w.tasks {
		t.f()
	}
}

// Enqueue schedules f for delivery. It reports false when the queue is full
// or the worker is closed; the caller counts the drop and moves on.
func (w *Worker) Enqueue(name string, f func()) bool {
	return xsync.WithLock(&w.m, func() bool {
		if w.closed {
			return false
		}
		select {
		case w.tasks <- task{name: name, f: f}:
			return true
		default:
			return false
		}
	})
}

// Close stops intake and waits for queued deliveries to drain, bounded by ctx.
func (w *Worker) Close(ctx context.Context) error {
	alreadyClosed := xsync.WithLock(&w.m, func() bool {
		if w.closed {
			return true
		}
		w.closed = true
		close(w.tasks)

		return false
	})
	if alreadyClosed {
		return xerrors.WithStackTrace(ErrAlreadyClosed)
	}

	select {
	case <-w.drained:
		return nil
	case <-ctx.Done():
		return xerrors.WithStackTrace(ctx.Err())
	}
}
