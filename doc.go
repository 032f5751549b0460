// Package spanlog bridges span lifecycle events into structured log records.
/*
A Tracer converts completed spans into records carrying trace identity,
timing and status, and hands them to a logs.Logger. Spans reach the tracer
either directly, through Tracer.StartSpan, or through the diagnostic bus
when instrumented libraries announce them.

	logger := log.Default(os.Stderr)
	tracer, err := trace.New(logger)
	if err != nil {
	    // malformed configuration surfaces here, not at span creation
	}

	ctx, span := tracer.StartSpan(ctx, "resolve user")
	defer span.End()

	span.Tag(logs.String("user", userID))
	if err := resolve(ctx); err != nil {
	    span.Complete(logs.ERROR, err)
	}

Sampling is decided once per trace, at the root, and inherited by every
descendant through the context. Per-source level overrides gate spans before
they are materialized. Instrumentors subscribe to bus sources for the
lifetime of an instrument.Scope.
*/
package spanlog

import (
	"github.com/spanlog/spanlog-go/logs"
	"github.com/spanlog/spanlog-go/trace"
)

// New is a shortcut for trace.New.
func New(logger logs.Logger, opts ...trace.Option) (*trace.Tracer, error) {
	return trace.New(logger, opts...)
}
