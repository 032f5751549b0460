package log

import (
	"context"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/spanlog/spanlog-go/internal/xstring"
	"github.com/spanlog/spanlog-go/logs"
)

const dateLayout = "2006-01-02 15:04:05.000"

var _ logs.Logger = (*defaultLogger)(nil)

type simpleLoggerOption interface {
	applySimpleOption(l *defaultLogger)
}

// Default returns a console logger writing one line per record.
func Default(w io.Writer, opts ...simpleLoggerOption) *defaultLogger {
	l := &defaultLogger{
		coloring: false,
		minLevel: logs.INFO,
		clock:    clockwork.NewRealClock(),
		w:        w,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applySimpleOption(l)
		}
	}

	return l
}

type defaultLogger struct {
	coloring bool
	minLevel logs.Level
	clock    clockwork.Clock
	w        io.Writer
}

func (l *defaultLogger) Log(_ context.Context, record logs.Record) {
	if record.Level < l.minLevel {
		return
	}

	b := xstring.Buffer()
	defer b.Free()

	if l.coloring {
		b.WriteString(color(record.Level))
	}
	ts := record.Timestamp
	if ts.IsZero() {
		ts = l.clock.Now()
	}
	b.WriteString(ts.Format(dateLayout))
	b.WriteByte(' ')
	if l.coloring {
		b.WriteString(colorReset)
		b.WriteString(boldColor(record.Level))
	}
	b.WriteString(record.Level.String())
	if l.coloring {
		b.WriteString(colorReset)
		b.WriteString(color(record.Level))
	}
	b.WriteString(" => ")
	b.WriteString(record.MessageTemplate)
	if record.TraceID != "" {
		b.WriteString(" trace=")
		b.WriteString(record.TraceID)
		b.WriteString(" span=")
		b.WriteString(record.SpanID)
		if record.ParentSpanID != "" {
			b.WriteString(" parent=")
			b.WriteString(record.ParentSpanID)
		}
	}
	if len(record.Properties) > 0 {
		b.WriteString(" {")
		for i, f := range record.Properties {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(f.Key())
			b.WriteString(`":"`)
			b.WriteString(f.String())
			b.WriteByte('"')
		}
		b.WriteByte('}')
	}
	if record.Err != nil {
		b.WriteString(" error=")
		b.WriteString(record.Err.Error())
	}
	if l.coloring {
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')

	_, _ = l.w.Write(b.Bytes())
}
