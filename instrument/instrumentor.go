// Package instrument routes diagnostic bus events to pluggable instrumentors
// for the lifetime of an explicit tracing scope.
package instrument

import (
	"github.com/spanlog/spanlog-go/bus"
	"github.com/spanlog/spanlog-go/trace"
)

// Instrumentor is a capability, not a base class: anything that can answer
// which sources it cares about and handle their events qualifies.
//
// Handle receives every lifecycle and diagnostic event of every subscribed
// source exactly once. An instrumentor that does not recognize an event name
// must treat it as a no-op, never as an error. For lifecycle events span is
// the subject span, for raw diagnostic payloads it is nil.
type Instrumentor interface {
	ShouldSubscribe(source string) bool
	Handle(span *trace.Span, event string, payload interface{})
}

// Closer is an optional capability: instrumentors that hold resources
// implement it and are torn down when the tracing scope is released.
type Closer interface {
	Close() error
}

// OnSpan builds a source-filtering instrumentor reacting to span lifecycle
// events only. Either callback may be nil.
func OnSpan(match func(source string) bool, onStart, onStop func(s *trace.Span)) Instrumentor {
	return &spanInstrumentor{
		match:   match,
		onStart: onStart,
		onStop:  onStop,
	}
}

type spanInstrumentor struct {
	match   func(source string) bool
	onStart func(s *trace.Span)
	onStop  func(s *trace.Span)
}

func (i *spanInstrumentor) ShouldSubscribe(source string) bool {
	return i.match == nil || i.match(source)
}

func (i *spanInstrumentor) Handle(span *trace.Span, event string, _ interface{}) {
	if span == nil {
		return
	}
	switch event {
	case bus.EventSpanStarted:
		if i.onStart != nil {
			i.onStart(span)
		}
	case bus.EventSpanStopped:
		if i.onStop != nil {
			i.onStop(span)
		}
	}
}

// Direct builds an instrumentor observing every raw event of its sources,
// key-value diagnostic payloads included.
func Direct(match func(source string) bool, handle func(event string, payload interface{})) Instrumentor {
	return &directInstrumentor{
		match:  match,
		handle: handle,
	}
}

type directInstrumentor struct {
	match  func(source string) bool
	handle func(event string, payload interface{})
}

func (i *directInstrumentor) ShouldSubscribe(source string) bool {
	return i.match == nil || i.match(source)
}

func (i *directInstrumentor) Handle(_ *trace.Span, event string, payload interface{}) {
	i.handle(event, payload)
}
