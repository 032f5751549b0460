// Package metrics instruments the bridge itself. All methods are nil-safe,
// a tracer constructed without a registerer carries a nil *Bridge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Bridge struct {
	spansStarted    *prometheus.CounterVec
	spansGated      *prometheus.CounterVec
	spansSampledOut prometheus.Counter
	recordsEmitted  prometheus.Counter
	recordsDropped  prometheus.Counter
}

func New(reg prometheus.Registerer) *Bridge {
	b := &Bridge{
		spansStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "spans_started_total",
			Help:      "Spans materialized, by source.",
		}, []string{"source"}),
		spansGated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "spans_gated_total",
			Help:      "Span requests dropped by initial level gating, by source.",
		}, []string{"source"}),
		spansSampledOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "spans_sampled_out_total",
			Help:      "Completed spans suppressed by a not-recorded trace decision.",
		}),
		recordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "records_emitted_total",
			Help:      "Span log records handed to the logger.",
		}),
		recordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "records_dropped_total",
			Help:      "Span log records dropped by the async delivery queue.",
		}),
	}
	reg.MustRegister(
		b.spansStarted,
		b.spansGated,
		b.spansSampledOut,
		b.recordsEmitted,
		b.recordsDropped,
	)

	return b
}

func (b *Bridge) SpanStarted(source string) {
	if b == nil {
		return
	}
	b.spansStarted.WithLabelValues(source).Inc()
}

func (b *Bridge) SpanGated(source string) {
	if b == nil {
		return
	}
	b.spansGated.WithLabelValues(source).Inc()
}

func (b *Bridge) SpanSampledOut() {
	if b == nil {
		return
	}
	b.spansSampledOut.Inc()
}

func (b *Bridge) RecordEmitted() {
	if b == nil {
		return
	}
	b.recordsEmitted.Inc()
}

func (b *Bridge) RecordDropped() {
	if b == nil {
		return
	}
	b.recordsDropped.Inc()
}

// Dispatch counts instrumentation dispatch failures. Nil-safe like Bridge.
type Dispatch struct {
	instrumentorFails *prometheus.CounterVec
}

func NewDispatch(reg prometheus.Registerer) *Dispatch {
	d := &Dispatch{
		instrumentorFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spanlog",
			Name:      "instrumentor_failures_total",
			Help:      "Instrumentor handlers isolated after failing, by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(d.instrumentorFails)

	return d
}

func (d *Dispatch) InstrumentorFailed(source string) {
	if d == nil {
		return
	}
	d.instrumentorFails.WithLabelValues(source).Inc()
}
