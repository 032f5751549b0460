package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spanlog/spanlog-go/logs"
)

func TestSpanFromContext(t *testing.T) {
	require.Nil(t, SpanFromContext(context.Background()))

	s := &Span{traceID: NewTraceID(), spanID: newSpanID()}
	ctx := WithSpan(context.Background(), s)
	require.Same(t, s, SpanFromContext(ctx))
}

func TestAnnotate(t *testing.T) {
	t.Run("NoAmbientSpan", func(t *testing.T) {
		r := Annotate(context.Background(), logs.Record{MessageTemplate: "msg"})
		require.Empty(t, r.TraceID)
		require.Empty(t, r.SpanID)
	})
	t.Run("StampsIdentity", func(t *testing.T) {
		s := &Span{traceID: NewTraceID(), spanID: newSpanID()}
		ctx := WithSpan(context.Background(), s)

		r := Annotate(ctx, logs.Record{MessageTemplate: "msg"})
		require.Equal(t, s.TraceID().String(), r.TraceID)
		require.Equal(t, s.SpanID().String(), r.SpanID)
	})
	t.Run("KeepsExistingIdentity", func(t *testing.T) {
		s := &Span{traceID: NewTraceID(), spanID: newSpanID()}
		ctx := WithSpan(context.Background(), s)

		r := Annotate(ctx, logs.Record{TraceID: "fixed"})
		require.Equal(t, "fixed", r.TraceID)
	})
}

func TestParseTraceID(t *testing.T) {
	id := NewTraceID()
	parsed, err := ParseTraceID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = ParseTraceID("not-hex")
	require.Error(t, err)
	_, err = ParseTraceID("abcd")
	require.Error(t, err)
}
