package log

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/spanlog/spanlog-go/logs"
)

func TestDefaultLoggerFormat(t *testing.T) {
	var out bytes.Buffer
	l := Default(&out)

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.Log(context.Background(), logs.Record{
		Timestamp:       ts,
		Level:           logs.INFO,
		MessageTemplate: "resolve user",
		Properties: []logs.Field{
			logs.String("user", "alice"),
			logs.Int("attempt", 3),
		},
		TraceID:      "0af7651916cd43dd8448eb211c80319c",
		SpanID:       "b7ad6b7169203331",
		ParentSpanID: "00f067aa0ba902b7",
	})

	line := out.String()
	require.Contains(t, line, "2024-06-01 12:00:00.000")
	require.Contains(t, line, "INFO => resolve user")
	require.Contains(t, line, "trace=0af7651916cd43dd8448eb211c80319c")
	require.Contains(t, line, "span=b7ad6b7169203331")
	require.Contains(t, line, "parent=00f067aa0ba902b7")
	require.Contains(t, line, `"user":"alice"`)
	require.Contains(t, line, `"attempt":"3"`)
}

func TestDefaultLoggerMinLevel(t *testing.T) {
	var out bytes.Buffer
	l := Default(&out, WithMinLevel(logs.WARN))

	l.Log(context.Background(), logs.Record{Level: logs.INFO, MessageTemplate: "dropped"})
	require.Empty(t, out.String())

	l.Log(context.Background(), logs.Record{Level: logs.ERROR, MessageTemplate: "kept"})
	require.Contains(t, out.String(), "kept")
}

func TestDefaultLoggerColoring(t *testing.T) {
	var out bytes.Buffer
	l := Default(&out, WithColoring(), WithMinLevel(logs.TRACE))

	l.Log(context.Background(), logs.Record{Level: logs.WARN, MessageTemplate: "slow"})

	line := out.String()
	require.Contains(t, line, "\033[30m\033[103mWARN\033[0m")
	require.NotContains(t, line, "m[30m")
}

func TestDefaultLoggerClockFallback(t *testing.T) {
	var out bytes.Buffer
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	l := Default(&out, WithClock(clock))

	l.Log(context.Background(), logs.Record{Level: logs.INFO, MessageTemplate: "no timestamp"})
	require.Contains(t, out.String(), "2024-06-01 12:00:00.000")
}
