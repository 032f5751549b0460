package trace

import (
	"context"

	"github.com/spanlog/spanlog-go/logs"
)

type (
	spanContextKey         struct{}
	remoteParentContextKey struct{}
)

// WithSpan returns context which has associated Span with it. Descendant
// spans started from the returned context inherit the span's trace identity
// and sampling decision.
func WithSpan(ctx context.Context, s *Span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, s)
}

// SpanFromContext returns the Span associated with ctx, or nil if the
// context carries none.
func SpanFromContext(ctx context.Context) *Span {
	s, _ := ctx.Value(spanContextKey{}).(*Span)

	return s
}

// RemoteParent is trace identity received from an upstream service. A span
// started under it joins the remote trace; the carried decision is only a
// hint, samplers decide whether to trust it.
type RemoteParent struct {
	TraceID  TraceID
	SpanID   SpanID
	Decision Decision
}

// WithRemoteParent returns context which has associated RemoteParent with it.
func WithRemoteParent(ctx context.Context, p RemoteParent) context.Context {
	return context.WithValue(ctx, remoteParentContextKey{}, p)
}

func remoteParentFromContext(ctx context.Context) (RemoteParent, bool) {
	p, has := ctx.Value(remoteParentContextKey{}).(RemoteParent)

	return p, has && !p.TraceID.IsZero()
}

// Annotate stamps the ambient span's trace identity onto an ordinary log
// record that does not carry its own. Records written during a span's
// lifetime stay correlated with the trace even when the trace itself is
// sampled out.
func Annotate(ctx context.Context, r logs.Record) logs.Record {
	if r.TraceID != "" {
		return r
	}
	s := SpanFromContext(ctx)
	if s == nil {
		return r
	}
	r.TraceID = s.TraceID().String()
	r.SpanID = s.SpanID().String()

	return r
}
