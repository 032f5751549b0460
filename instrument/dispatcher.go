package instrument

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spanlog/spanlog-go/bus"
	"github.com/spanlog/spanlog-go/internal/metrics"
	"github.com/spanlog/spanlog-go/internal/xerrors"
	"github.com/spanlog/spanlog-go/internal/xsync"
	"github.com/spanlog/spanlog-go/logs"
	"github.com/spanlog/spanlog-go/trace"
)

var (
	errNilBus       = errors.New("spanlog: instrumentation requires a bus")
	errScopeClosed  = errors.New("spanlog: tracing scope already released")
	errScopeRelease = errors.New("spanlog: tracing scope release failed")
)

type dispatcherConfig struct {
	logger     logs.Logger
	clock      clockwork.Clock
	registerer prometheus.Registerer
}

type Option func(c *dispatcherConfig)

// WithLogger reports isolated instrumentor failures through logger. Without
// one failures are only counted.
func WithLogger(l logs.Logger) Option {
	return func(c *dispatcherConfig) {
		c.logger = l
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *dispatcherConfig) {
		c.clock = clock
	}
}

// WithMetrics registers dispatch self-instrumentation on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *dispatcherConfig) {
		c.registerer = reg
	}
}

// Enable installs one bus subscription per instrumentor and returns the
// Scope owning them. Releasing the scope is the only way to detach.
//
// A panicking or failing instrumentor is isolated: its subscription keeps
// delivering to the others and the span that triggered the event completes
// normally.
func Enable(b *bus.Bus, instrumentors []Instrumentor, opts ...Option) (*Scope, error) {
	if b == nil {
		return nil, xerrors.WithStackTrace(errNilBus)
	}
	c := dispatcherConfig{
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	d := &dispatcher{
		logger: c.logger,
		clock:  c.clock,
	}
	if c.registerer != nil {
		d.metrics = metrics.NewDispatch(c.registerer)
	}
	scope := &Scope{}
	for _, ins := range instrumentors {
		if ins == nil {
			continue
		}
		var subOpts []bus.SubscribeOption
		if closer, ok := ins.(Closer); ok {
			subOpts = append(subOpts, bus.WithOnClose(closer.Close))
		}
		scope.subs = append(scope.subs, b.Subscribe(ins.ShouldSubscribe, d.route(ins), subOpts...))
	}

	return scope, nil
}

type dispatcher struct {
	logger  logs.Logger
	clock   clockwork.Clock
	metrics *metrics.Dispatch
}

// route wraps a single instrumentor's Handle with failure isolation. Dispatch
// must never propagate back into application code that merely started a span.
func (d *dispatcher) route(ins Instrumentor) bus.Handler {
	return func(source, event string, payload interface{}) {
		defer func() {
			if r := recover(); r != nil {
				d.metrics.InstrumentorFailed(source)
				if d.logger != nil {
					d.logger.Log(context.Background(), logs.Record{
						Timestamp:       d.clock.Now(),
						Level:           logs.WARN,
						MessageTemplate: "instrumentor failed, continuing dispatch",
						Properties: []logs.Field{
							logs.String("source", source),
							logs.String("event", event),
							logs.String("panic", fmt.Sprint(r)),
						},
					})
				}
			}
		}()
		span, _ := payload.(*trace.Span)
		ins.Handle(span, event, payload)
	}
}

// Scope is the explicit lifetime of installed instrumentation. Releasing it
// tears down every subscription regardless of ordering and reports all
// individual teardown failures as one aggregate error instead of stopping at
// the first.
type Scope struct {
	m      xsync.Mutex
	subs   []*bus.Subscription
	closed bool
}

func (s *Scope) Close(ctx context.Context) error {
	var subs []*bus.Subscription
	alreadyClosed := xsync.WithLock(&s.m, func() bool {
		if s.closed {
			return true
		}
		s.closed = true
		subs = s.subs
		s.subs = nil

		return false
	})
	if alreadyClosed {
		return xerrors.WithStackTrace(errScopeClosed)
	}

	errs := make([]error, 0, len(subs))
	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			errs = append(errs, err)
		}
	}
	if joined := xerrors.Join(errs...); joined != nil {
		return xerrors.WithStackTrace(xerrors.Join(errScopeRelease, joined))
	}

	return nil
}
