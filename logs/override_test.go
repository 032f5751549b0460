package logs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGateLevel(t *testing.T) {
	o := NewOverrides(INFO).
		WithSource("noisy", ERROR).
		WithSource("verbose", TRACE)

	require.Equal(t, ERROR, o.GateLevel("noisy"))
	require.Equal(t, TRACE, o.GateLevel("verbose"))
	require.Equal(t, INFO, o.GateLevel("anything-else"))

	var nilTable *LevelOverrides
	require.Equal(t, TRACE, nilTable.GateLevel("anything"))
}

func TestAdmit(t *testing.T) {
	o := NewOverrides(TRACE).WithSource("X", WARN)

	require.False(t, o.Admit("X", INFO))
	require.True(t, o.Admit("X", WARN))
	require.True(t, o.Admit("X", ERROR))
	require.True(t, o.Admit("Y", TRACE))
}

func TestWithSourceDoesNotMutate(t *testing.T) {
	base := NewOverrides(INFO)
	derived := base.WithSource("X", ERROR)

	require.Equal(t, INFO, base.GateLevel("X"))
	require.Equal(t, ERROR, derived.GateLevel("X"))
}

func TestElevate(t *testing.T) {
	for _, tt := range []struct {
		initial    Level
		completion Level
		want       Level
	}{
		{INFO, ERROR, ERROR},
		{WARN, DEBUG, WARN},
		{WARN, WARN, WARN},
		{TRACE, FATAL, FATAL},
	} {
		require.Equal(t, tt.want, Elevate(tt.initial, tt.completion))
	}
}
