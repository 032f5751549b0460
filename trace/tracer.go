package trace

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spanlog/spanlog-go/bus"
	"github.com/spanlog/spanlog-go/internal/background"
	"github.com/spanlog/spanlog-go/internal/mapper"
	"github.com/spanlog/spanlog-go/internal/metrics"
	"github.com/spanlog/spanlog-go/internal/xerrors"
	"github.com/spanlog/spanlog-go/logs"
)

var (
	errNilLogger       = errors.New("spanlog: tracer requires a logger")
	errInvalidQueueLen = errors.New("spanlog: async delivery queue length must be positive")
)

// DeclinedPolicy selects what happens when a listener-observed span creation
// is declined by the bus.
type DeclinedPolicy int

const (
	// DeclinedFallbackToManual records the span through the manual path so
	// log-level behavior does not silently depend on a listener being
	// attached. This is the default.
	DeclinedFallbackToManual = DeclinedPolicy(iota)
	// DeclinedNoSpan creates no span at all.
	DeclinedNoSpan
)

// Tracer is the span lifecycle manager. It is an explicitly constructed
// object, there is no package-level ambient instance: everything a span
// needs (logger, sampler, gating table, clock, bus) is held here.
//
// A Tracer is safe for concurrent use.
type Tracer struct {
	logger       logs.Logger
	sampler      Sampler
	overrides    *logs.LevelOverrides
	clock        clockwork.Clock
	bus          *bus.Bus
	source       string
	declined     DeclinedPolicy
	expandEvents bool
	metrics      *metrics.Bridge
	worker       *background.Worker
}

type tracerConfig struct {
	sampler      Sampler
	overrides    *logs.LevelOverrides
	clock        clockwork.Clock
	bus          *bus.Bus
	source       string
	declined     DeclinedPolicy
	expandEvents bool
	registerer   prometheus.Registerer
	queueLen     int
}

type Option func(c *tracerConfig) error

// WithSampler sets the root sampling policy. Defaults to SampleAll.
func WithSampler(s Sampler) Option {
	return func(c *tracerConfig) error {
		c.sampler = s

		return nil
	}
}

// WithOverrides sets the per-source initial level gating table.
func WithOverrides(o *logs.LevelOverrides) Option {
	return func(c *tracerConfig) error {
		c.overrides = o

		return nil
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *tracerConfig) error {
		c.clock = clock

		return nil
	}
}

// WithBus attaches the diagnostic bus. Without one every span takes the
// manual creation path.
func WithBus(b *bus.Bus) Option {
	return func(c *tracerConfig) error {
		c.bus = b

		return nil
	}
}

// WithDefaultSource names the event source for spans started without an
// explicit one.
func WithDefaultSource(source string) Option {
	return func(c *tracerConfig) error {
		c.source = source

		return nil
	}
}

func WithDeclinedPolicy(p DeclinedPolicy) Option {
	return func(c *tracerConfig) error {
		c.declined = p

		return nil
	}
}

// WithSpanEvents maps each non-error span event to its own log record.
// Without this opt-in embedded events are dropped.
func WithSpanEvents() Option {
	return func(c *tracerConfig) error {
		c.expandEvents = true

		return nil
	}
}

// WithMetrics registers bridge self-instrumentation on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *tracerConfig) error {
		c.registerer = reg

		return nil
	}
}

// WithAsyncDelivery hands mapped records to the logger from a background
// goroutine through a bounded queue of the given length. Records that do not
// fit are dropped and counted.
func WithAsyncDelivery(queueLen int) Option {
	return func(c *tracerConfig) error {
		if queueLen < 1 {
			return xerrors.WithStackTrace(errInvalidQueueLen)
		}
		c.queueLen = queueLen

		return nil
	}
}

// New constructs a Tracer. Configuration problems surface here, never at
// span creation time.
func New(logger logs.Logger, opts ...Option) (*Tracer, error) {
	if logger == nil {
		return nil, xerrors.WithStackTrace(errNilLogger)
	}
	c := tracerConfig{
		sampler: SampleAll(),
		clock:   clockwork.NewRealClock(),
		source:  "spanlog",
	}
	for _, opt := range opts {
		if opt != nil {
			if err := opt(&c); err != nil {
				return nil, err
			}
		}
	}
	t := &Tracer{
		logger:       logger,
		sampler:      c.sampler,
		overrides:    c.overrides,
		clock:        c.clock,
		bus:          c.bus,
		source:       c.source,
		declined:     c.declined,
		expandEvents: c.expandEvents,
	}
	if c.registerer != nil {
		t.metrics = metrics.New(c.registerer)
	}
	if c.queueLen > 0 {
		t.worker = background.NewWorker(c.queueLen)
	}

	return t, nil
}

// Close drains pending asynchronous deliveries. A Tracer without async
// delivery closes trivially.
func (t *Tracer) Close(ctx context.Context) error {
	if t.worker == nil {
		return nil
	}

	return t.worker.Close(ctx)
}

type startOptions struct {
	level  logs.Level
	kind   Kind
	source string
	tags   []logs.Field
}

type StartOption func(o *startOptions)

// WithLevel sets the span's initial level, consulted by per-source gating.
// Defaults to INFO.
func WithLevel(lvl logs.Level) StartOption {
	return func(o *startOptions) {
		o.level = lvl
	}
}

func WithKind(k Kind) StartOption {
	return func(o *startOptions) {
		o.kind = k
	}
}

// WithSource attributes the span to a named event source.
func WithSource(source string) StartOption {
	return func(o *startOptions) {
		o.source = source
	}
}

// WithTags attaches properties at creation time.
func WithTags(fields ...logs.Field) StartOption {
	return func(o *startOptions) {
		o.tags = fields
	}
}

// StartSpan creates a span and returns a context carrying it as the ambient
// parent for descendants.
//
// Gating happens before the span is materialized: when the initial level is
// below the source's threshold no span object is created at all and the
// returned span is nil (safe to tag and complete).
//
// Root detection: a span is a root when the context holds no ambient parent.
// The sampler runs at the root only; every descendant inherits the trace's
// decision through the context and never re-evaluates it.
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...StartOption) (context.Context, *Span) {
	options := startOptions{
		level:  logs.INFO,
		kind:   KindInternal,
		source: t.source,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if t.overrides != nil && !t.overrides.Admit(options.source, options.level) {
		t.metrics.SpanGated(options.source)

		return ctx, nil
	}

	var (
		parent            = SpanFromContext(ctx)
		remote, hasRemote = remoteParentFromContext(ctx)

		traceID  TraceID
		parentID SpanID
		decision Decision
	)
	switch {
	case parent != nil:
		traceID = parent.traceID
		parentID = parent.spanID
		decision = parent.decision
	case hasRemote:
		// remote identity is joined but the local subtree still samples
		// as a root: the incoming decision is a hint, not a ruling
		traceID = remote.TraceID
		parentID = remote.SpanID
	default:
		traceID = NewTraceID()
	}

	observed := t.bus != nil && t.bus.HasListener(options.source)
	if observed && !t.bus.Materialize(bus.StartRequest{
		Source:  options.source,
		Name:    name,
		TraceID: traceID.String(),
	}) {
		if t.declined == DeclinedNoSpan {
			return ctx, nil
		}
		observed = false
	}

	if parent == nil {
		if observed {
			tc := TraceContext{TraceID: traceID}
			if hasRemote {
				tc.Remote = remote.Decision
			}
			decision = t.sampler.Decide(tc)
		} else {
			// manual path: with no listener attached there is nothing to
			// sample against, granularity is controlled by log level alone
			decision = Recorded
		}
	}

	s := &Span{
		tracer:       t,
		traceID:      traceID,
		spanID:       newSpanID(),
		parentSpanID: parentID,
		name:         name,
		kind:         options.kind,
		source:       options.source,
		decision:     decision,
		initialLevel: options.level,
		startedAt:    t.clock.Now(),
	}
	if len(options.tags) > 0 {
		s.tags = append(s.tags, options.tags...)
	}
	t.metrics.SpanStarted(options.source)
	if observed {
		t.bus.Publish(options.source, bus.EventSpanStarted, s)
	}

	return WithSpan(ctx, s), s
}

// Log writes an ordinary record through the tracer's logger, stamped with
// the ambient trace identity. Ordinary records are never suppressed by
// sampling, at worst they lack correlation.
func (t *Tracer) Log(ctx context.Context, lvl logs.Level, msg string, fields ...logs.Field) {
	t.logger.Log(ctx, Annotate(ctx, logs.Record{
		Timestamp:       t.clock.Now(),
		Level:           lvl,
		MessageTemplate: msg,
		Properties:      fields,
	}))
}

func (t *Tracer) finish(s *Span) {
	if t.bus != nil && t.bus.HasListener(s.source) {
		t.bus.Publish(s.source, bus.EventSpanStopped, s)
	}
	if s.decision == NotRecorded {
		t.metrics.SpanSampledOut()

		return
	}

	d := s.snapshot()
	var records []logs.Record
	if t.expandEvents {
		records = mapper.EventRecords(d)
	}
	records = append(records, mapper.ToRecord(d))

	if t.worker != nil {
		if !t.worker.Enqueue(s.name, func() {
			t.deliver(records)
		}) {
			t.metrics.RecordDropped()
		}

		return
	}
	t.deliver(records)
}

func (t *Tracer) deliver(records []logs.Record) {
	for _, r := range records {
		t.logger.Log(context.Background(), r)
		t.metrics.RecordEmitted()
	}
}
