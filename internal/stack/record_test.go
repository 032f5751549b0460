package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	require.Equal(t, "stack.TestRecord(record_test.go:10)", Record(0))
}

func TestCallRecord(t *testing.T) {
	c := Call(0)
	require.Equal(t, "stack.TestCallRecord(record_test.go:14)", c.Record())
}
