// Package bus is the process-wide diagnostic broadcast mechanism. Named
// event sources announce span lifecycle and arbitrary key-value events,
// subscribers receive every event of every source matching their predicate.
package bus

import (
	"errors"
	"sync/atomic"

	"github.com/spanlog/spanlog-go/internal/xerrors"
	"github.com/spanlog/spanlog-go/internal/xsync"
)

// Lifecycle event names announced by the span lifecycle manager.
const (
	EventSpanStarted = "span-started"
	EventSpanStopped = "span-stopped"
)

// Handler receives every event of every source the subscription matched.
type Handler func(source, event string, payload interface{})

// StartRequest asks subscribers to materialize a span. Subscribers may
// decline due to gating of their own.
type StartRequest struct {
	Source  string
	Name    string
	TraceID string
}

// Materializer vetoes span materialization for a matched source. Nil means
// accept everything.
type Materializer func(req StartRequest) bool

// Bus fans events out to subscriptions. The zero value is not usable, always
// construct with New.
type Bus struct {
	m    xsync.RWMutex
	subs []*Subscription
}

func New() *Bus {
	return &Bus{}
}

type subscribeOptions struct {
	materialize Materializer
	onClose     func() error
}

type SubscribeOption func(o *subscribeOptions)

// WithMaterializer installs a veto consulted by Bus.Materialize for sources
// matched by this subscription.
func WithMaterializer(m Materializer) SubscribeOption {
	return func(o *subscribeOptions) {
		o.materialize = m
	}
}

// WithOnClose attaches a teardown hook reported from Subscription.Unsubscribe.
func WithOnClose(f func() error) SubscribeOption {
	return func(o *subscribeOptions) {
		o.onClose = f
	}
}

// Subscribe registers handler for every source matching pred. A nil pred
// matches all sources.
func (b *Bus) Subscribe(pred func(source string) bool, handler Handler, opts ...SubscribeOption) *Subscription {
	options := subscribeOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	s := &Subscription{
		bus:         b,
		pred:        pred,
		handler:     handler,
		materialize: options.materialize,
		onClose:     options.onClose,
	}
	b.m.WithLock(func() {
		// copy-on-write keeps Publish iteration safe against
		// unsubscribing from inside a handler
		subs := make([]*Subscription, 0, len(b.subs)+1)
		subs = append(subs, b.subs...)
		b.subs = append(subs, s)
	})

	return s
}

func (b *Bus) active() []*Subscription {
	return xsync.WithRLock(&b.m, func() []*Subscription {
		return b.subs
	})
}

// HasListener reports whether at least one active subscription matches source.
func (b *Bus) HasListener(source string) bool {
	for _, s := range b.active() {
		if s.matches(source) {
			return true
		}
	}

	return false
}

// Materialize consults every matching subscription's veto. It returns false
// as soon as one matched subscription declines; a bus with no matching
// subscription accepts vacuously (callers gate on HasListener first).
func (b *Bus) Materialize(req StartRequest) bool {
	for _, s := range b.active() {
		if !s.matches(req.Source) {
			continue
		}
		if s.materialize != nil && !s.materialize(req) {
			return false
		}
	}

	return true
}

// Publish delivers the event to every matching subscription exactly once.
// Dispatch order between subscriptions is unspecified.
func (b *Bus) Publish(source, event string, payload interface{}) {
	for _, s := range b.active() {
		if s.matches(source) {
			s.handler(source, event, payload)
		}
	}
}

// Subscription is a single registration on the Bus.
type Subscription struct {
	bus         *Bus
	pred        func(source string) bool
	handler     Handler
	materialize Materializer
	onClose     func() error

	closed atomic.Bool
}

func (s *Subscription) matches(source string) bool {
	if s.closed.Load() {
		return false
	}

	return s.pred == nil || s.pred(source)
}

var errSubscriptionTeardown = errors.New("spanlog: subscription teardown failed")

// Unsubscribe detaches the subscription and runs its teardown hook.
// It is idempotent and safe to call while a Publish is iterating.
func (s *Subscription) Unsubscribe() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.bus.m.WithLock(func() {
		subs := make([]*Subscription, 0, len(s.bus.subs))
		for _, sub := range s.bus.subs {
			if sub != s {
				subs = append(subs, sub)
			}
		}
		s.bus.subs = subs
	})
	if s.onClose != nil {
		if err := s.onClose(); err != nil {
			return xerrors.WithStackTrace(xerrors.Join(errSubscriptionTeardown, err))
		}
	}

	return nil
}
