package log

import (
	"github.com/jonboulle/clockwork"

	"github.com/spanlog/spanlog-go/logs"
)

type coloringOption bool

func (c coloringOption) applySimpleOption(l *defaultLogger) {
	l.coloring = bool(c)
}

// WithColoring colorizes console output by level.
func WithColoring() simpleLoggerOption {
	return coloringOption(true)
}

type minLevelOption logs.Level

func (lvl minLevelOption) applySimpleOption(l *defaultLogger) {
	l.minLevel = logs.Level(lvl)
}

// WithMinLevel drops records below lvl.
func WithMinLevel(lvl logs.Level) simpleLoggerOption {
	return minLevelOption(lvl)
}

type clockOption struct {
	clock clockwork.Clock
}

func (c clockOption) applySimpleOption(l *defaultLogger) {
	l.clock = c.clock
}

// WithClock substitutes the clock used for records without a timestamp.
func WithClock(clock clockwork.Clock) simpleLoggerOption {
	return clockOption{clock: clock}
}
