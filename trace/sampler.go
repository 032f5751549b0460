package trace

import (
	"errors"
	"hash/fnv"

	"github.com/spanlog/spanlog-go/internal/xerrors"
)

var (
	errInvalidTraceID    = errors.New("spanlog: invalid trace id")
	errInvalidProportion = errors.New("spanlog: sampling proportion must be at least 1")
)

// Decision is the trace-wide choice of whether spans of a trace are converted
// into log records. It is assigned exactly once, at root span creation, and
// inherited unchanged by every descendant span.
type Decision int

const (
	DecisionUnset = Decision(iota)
	Recorded
	NotRecorded
)

func (d Decision) String() string {
	switch d {
	case Recorded:
		return "recorded"
	case NotRecorded:
		return "not-recorded"
	default:
		return "unset"
	}
}

// TraceContext carries what a Sampler may consult: the identity of the trace
// being started and, for federated setups, a trusted decision received from
// an upstream service (DecisionUnset when there is none).
type TraceContext struct {
	TraceID TraceID
	Remote  Decision
}

// Sampler decides, once per trace, whether its spans are recorded. Decide is
// invoked only for root spans, the lifecycle manager persists the returned
// decision on the trace context so descendants inherit it without another
// evaluation.
type Sampler interface {
	Decide(tc TraceContext) Decision
}

type samplerFunc func(tc TraceContext) Decision

func (f samplerFunc) Decide(tc TraceContext) Decision {
	return f(tc)
}

// SampleAll records every trace.
func SampleAll() Sampler {
	return samplerFunc(func(TraceContext) Decision {
		return Recorded
	})
}

// SampleProportion records one in n traces. The choice is a pure function of
// the trace id, replaying the policy for the same trace yields the same
// decision, and concurrent root creation cannot skew the distribution the way
// a shared counter would.
//
// n < 1 is a configuration error reported at setup time, never at span
// creation time.
func SampleProportion(n uint64) (Sampler, error) {
	if n < 1 {
		return nil, xerrors.WithStackTrace(errInvalidProportion)
	}

	return samplerFunc(func(tc TraceContext) Decision {
		h := fnv.New64a()
		_, _ = h.Write(tc.TraceID[:])
		if h.Sum64()%n == 0 {
			return Recorded
		}

		return NotRecorded
	}), nil
}

type predicateSamplerOptions struct {
	respectRemote bool
}

type PredicateSamplerOption func(o *predicateSamplerOptions)

// WithRespectRemoteDecision makes SamplePredicate honor a trusted incoming
// decision instead of evaluating the predicate, which lets sampling federate
// across services.
func WithRespectRemoteDecision() PredicateSamplerOption {
	return func(o *predicateSamplerOptions) {
		o.respectRemote = true
	}
}

// SamplePredicate records traces for which fn returns true. By default any
// incoming parent hint is ignored entirely.
func SamplePredicate(fn func(tc TraceContext) bool, opts ...PredicateSamplerOption) Sampler {
	options := predicateSamplerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return samplerFunc(func(tc TraceContext) Decision {
		if options.respectRemote && tc.Remote != DecisionUnset {
			return tc.Remote
		}
		if fn(tc) {
			return Recorded
		}

		return NotRecorded
	})
}
