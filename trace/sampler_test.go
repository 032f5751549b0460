package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleAll(t *testing.T) {
	s := SampleAll()
	for i := 0; i < 10; i++ {
		require.Equal(t, Recorded, s.Decide(TraceContext{TraceID: NewTraceID()}))
	}
}

func TestSampleProportion(t *testing.T) {
	t.Run("InvalidProportion", func(t *testing.T) {
		_, err := SampleProportion(0)
		require.ErrorIs(t, err, errInvalidProportion)
	})
	t.Run("EveryTrace", func(t *testing.T) {
		s, err := SampleProportion(1)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			require.Equal(t, Recorded, s.Decide(TraceContext{TraceID: NewTraceID()}))
		}
	})
	t.Run("StableForTraceID", func(t *testing.T) {
		s, err := SampleProportion(2)
		require.NoError(t, err)
		id := NewTraceID()
		first := s.Decide(TraceContext{TraceID: id})
		for i := 0; i < 10; i++ {
			require.Equal(t, first, s.Decide(TraceContext{TraceID: id}))
		}
	})
	t.Run("BothOutcomesOccur", func(t *testing.T) {
		s, err := SampleProportion(2)
		require.NoError(t, err)
		seen := map[Decision]bool{}
		for i := 0; i < 1000; i++ {
			seen[s.Decide(TraceContext{TraceID: NewTraceID()})] = true
		}
		require.True(t, seen[Recorded])
		require.True(t, seen[NotRecorded])
	})
}

func TestSamplePredicate(t *testing.T) {
	t.Run("Predicate", func(t *testing.T) {
		s := SamplePredicate(func(TraceContext) bool {
			return false
		})
		require.Equal(t, NotRecorded, s.Decide(TraceContext{TraceID: NewTraceID()}))
	})
	t.Run("IgnoresRemoteByDefault", func(t *testing.T) {
		s := SamplePredicate(func(TraceContext) bool {
			return false
		})
		require.Equal(t, NotRecorded, s.Decide(TraceContext{
			TraceID: NewTraceID(),
			Remote:  Recorded,
		}))
	})
	t.Run("RespectsRemoteWhenAsked", func(t *testing.T) {
		s := SamplePredicate(func(TraceContext) bool {
			return false
		}, WithRespectRemoteDecision())
		require.Equal(t, Recorded, s.Decide(TraceContext{
			TraceID: NewTraceID(),
			Remote:  Recorded,
		}))
		require.Equal(t, NotRecorded, s.Decide(TraceContext{
			TraceID: NewTraceID(),
		}))
	})
}
