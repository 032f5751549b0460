package trace

import (
	"sync/atomic"
	"time"

	"github.com/spanlog/spanlog-go/internal/mapper"
	"github.com/spanlog/spanlog-go/internal/xsync"
	"github.com/spanlog/spanlog-go/logs"
)

type Kind int

const (
	KindInternal = Kind(iota)
	KindClient
	KindServer
	KindProducer
	KindConsumer
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindProducer:
		return "producer"
	case KindConsumer:
		return "consumer"
	default:
		return "internal"
	}
}

// Event is a named point-in-time annotation inside a span.
type Event struct {
	Name      string
	Timestamp time.Time
	Fields    []logs.Field
}

// Span is a timed operation with trace identity. A span is mutated only by
// its owning call site: adding tags and completing are safe to interleave
// with completion from a deferred End, but a single span is not meant to be
// shared between goroutines doing independent work.
//
// All methods are safe on a nil receiver. The lifecycle manager returns nil
// when a span is gated out, callers tag and complete it without checking.
type Span struct {
	tracer *Tracer

	traceID      TraceID
	spanID       SpanID
	parentSpanID SpanID
	name         string
	kind         Kind
	source       string
	decision     Decision
	initialLevel logs.Level
	startedAt    time.Time

	completed atomic.Bool

	m           xsync.Mutex
	tags        []logs.Field
	events      []Event
	endedAt     time.Time
	statusLevel logs.Level
	statusErr   error
}

func (s *Span) TraceID() TraceID {
	if s == nil {
		return TraceID{}
	}

	return s.traceID
}

func (s *Span) SpanID() SpanID {
	if s == nil {
		return SpanID{}
	}

	return s.spanID
}

// ParentSpanID returns the parent identity and false for root spans.
func (s *Span) ParentSpanID() (SpanID, bool) {
	if s == nil {
		return SpanID{}, false
	}

	return s.parentSpanID, !s.parentSpanID.IsZero()
}

func (s *Span) Name() string {
	if s == nil {
		return ""
	}

	return s.name
}

func (s *Span) Kind() Kind {
	if s == nil {
		return KindInternal
	}

	return s.kind
}

func (s *Span) Source() string {
	if s == nil {
		return ""
	}

	return s.source
}

// Decision returns the sampling decision inherited from the span's trace.
func (s *Span) Decision() Decision {
	if s == nil {
		return DecisionUnset
	}

	return s.decision
}

func (s *Span) StartedAt() time.Time {
	if s == nil {
		return time.Time{}
	}

	return s.startedAt
}

func (s *Span) Completed() bool {
	return s != nil && s.completed.Load()
}

// Tag attaches properties to the span. Tags attached after completion are
// dropped, the record for the span has already been emitted.
func (s *Span) Tag(fields ...logs.Field) {
	if s == nil || s.completed.Load() {
		return
	}
	s.m.WithLock(func() {
		s.tags = append(s.tags, fields...)
	})
}

// Tags returns a copy of the tags attached so far.
func (s *Span) Tags() []logs.Field {
	if s == nil {
		return nil
	}

	return xsync.WithLock(&s.m, func() []logs.Field {
		return append([]logs.Field(nil), s.tags...)
	})
}

// AddEvent records a named point-in-time annotation on the span.
func (s *Span) AddEvent(name string, fields ...logs.Field) {
	if s == nil || s.completed.Load() {
		return
	}
	now := time.Now()
	if s.tracer != nil {
		now = s.tracer.clock.Now()
	}
	s.m.WithLock(func() {
		s.events = append(s.events, Event{
			Name:      name,
			Timestamp: now,
			Fields:    fields,
		})
	})
}

// Complete ends the span with an outcome. The effective status level is the
// maximum of the span's initial level and lvl. Completing an already
// completed span is a no-op, not an error, so a deferred End may follow an
// explicit Complete.
func (s *Span) Complete(lvl logs.Level, err error) {
	if s == nil {
		return
	}
	if !s.completed.CompareAndSwap(false, true) {
		return
	}
	now := time.Now()
	if s.tracer != nil {
		now = s.tracer.clock.Now()
	}
	s.m.WithLock(func() {
		s.endedAt = now
		s.statusLevel = logs.Elevate(s.initialLevel, lvl)
		s.statusErr = err
	})
	if s.tracer != nil {
		s.tracer.finish(s)
	}
}

// End completes the span at its initial level with no error. Meant for
// defer-on-scope-exit, it tolerates the caller having already completed the
// span explicitly.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.Complete(s.initialLevel, nil)
}

func (s *Span) snapshot() mapper.Data {
	d := mapper.Data{
		TraceID: s.traceID.String(),
		SpanID:  s.spanID.String(),
		Name:    s.name,
		Kind:    s.kind.String(),
	}
	if parent, has := s.ParentSpanID(); has {
		d.ParentSpanID = parent.String()
	}
	d.StartedAt = s.startedAt
	s.m.WithLock(func() {
		d.EndedAt = s.endedAt
		d.Level = s.statusLevel
		d.Err = s.statusErr
		d.Tags = append([]logs.Field(nil), s.tags...)
		for _, e := range s.events {
			d.Events = append(d.Events, mapper.Event{
				Name:      e.Name,
				Timestamp: e.Timestamp,
				Fields:    e.Fields,
			})
		}
	})

	return d
}
