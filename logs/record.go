package logs

import (
	"context"
	"time"
)

// Record is the structured output unit handed to a Logger. Downstream
// enrichment, filtering and sink fan-out happen behind the Logger contract,
// this package only defines the shape of a well-formed record.
type Record struct {
	Timestamp       time.Time
	Level           Level
	MessageTemplate string
	Properties      []Field
	Err             error

	// Correlation identity. Empty strings mean the record was written
	// outside of any span.
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// Property returns the first property with the given key.
func (r Record) Property(key string) (Field, bool) {
	for _, f := range r.Properties {
		if f.Key() == key {
			return f, true
		}
	}

	return Field{}, false
}

type Logger interface {
	// Log consumes the record. Implementations must not in any way use
	// record.Properties after Log returns.
	Log(ctx context.Context, record Record)
}

// LoggerFunc adapts a plain function to the Logger contract.
type LoggerFunc func(ctx context.Context, record Record)

func (f LoggerFunc) Log(ctx context.Context, record Record) {
	f(ctx, record)
}
