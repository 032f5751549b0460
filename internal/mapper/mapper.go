// Package mapper converts completed spans into structured log records.
// Conversion is pure, no I/O and no state.
package mapper

import (
	"time"

	"github.com/spanlog/spanlog-go/logs"
)

// PropSpanStart is the property name carrying the span's start timestamp on
// the resulting record; the record's own Timestamp is the end of the span.
const PropSpanStart = "SpanStartTimestamp"

// PropSpanKind carries the span kind for non-internal spans.
const PropSpanKind = "SpanKind"

// Data is a completed span, flattened. The lifecycle manager snapshots its
// span into Data once, after completion, so mapping never races with tagging.
type Data struct {
	TraceID      string
	SpanID       string
	ParentSpanID string

	Name      string
	Kind      string
	StartedAt time.Time
	EndedAt   time.Time
	Level     logs.Level
	Err       error

	Tags   []logs.Field
	Events []Event
}

type Event struct {
	Name      string
	Timestamp time.Time
	Fields    []logs.Field
}

// ToRecord produces exactly one record for the span. Malformed tags degrade
// to their string form rather than discarding the whole record.
func ToRecord(d Data) logs.Record {
	props := make([]logs.Field, 0, len(d.Tags)+2)
	props = append(props, logs.Time(PropSpanStart, d.StartedAt))
	if d.Kind != "" && d.Kind != "internal" {
		props = append(props, logs.String(PropSpanKind, d.Kind))
	}
	for _, tag := range d.Tags {
		props = append(props, sanitize(tag))
	}

	return logs.Record{
		Timestamp:       d.EndedAt,
		Level:           d.Level,
		MessageTemplate: d.Name,
		Properties:      props,
		Err:             statusError(d),
		TraceID:         d.TraceID,
		SpanID:          d.SpanID,
		ParentSpanID:    d.ParentSpanID,
	}
}

// EventRecords maps each non-error span event to its own record carrying the
// span's trace identity but no end-of-span semantics. Callers opt in, by
// default embedded events are dropped.
func EventRecords(d Data) []logs.Record {
	if len(d.Events) == 0 {
		return nil
	}
	records := make([]logs.Record, 0, len(d.Events))
	for _, e := range d.Events {
		if eventError(e) != nil {
			continue
		}
		props := make([]logs.Field, 0, len(e.Fields))
		for _, f := range e.Fields {
			props = append(props, sanitize(f))
		}
		records = append(records, logs.Record{
			Timestamp:       e.Timestamp,
			Level:           d.Level,
			MessageTemplate: e.Name,
			Properties:      props,
			TraceID:         d.TraceID,
			SpanID:          d.SpanID,
			ParentSpanID:    d.ParentSpanID,
		})
	}

	return records
}

// statusError resolves the record's error from the completion outcome or,
// failing that, from the first error event captured on the span.
func statusError(d Data) error {
	if d.Err != nil {
		return d.Err
	}
	for _, e := range d.Events {
		if err := eventError(e); err != nil {
			return err
		}
	}

	return nil
}

func eventError(e Event) error {
	for _, f := range e.Fields {
		if f.Type() == logs.ErrorType {
			return f.ErrorValue()
		}
	}

	return nil
}

func sanitize(f logs.Field) logs.Field {
	if f.Type() == logs.InvalidType {
		return logs.String(f.Key(), "<invalid>")
	}

	return f
}
