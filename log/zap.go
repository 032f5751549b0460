package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spanlog/spanlog-go/logs"
)

// WithZap adapts a zap logger to the logs.Logger contract.
func WithZap(l *zap.Logger) logs.Logger {
	return &zapAdapter{l: l}
}

type zapAdapter struct {
	l *zap.Logger
}

func (a *zapAdapter) Log(_ context.Context, record logs.Record) {
	ce := a.l.Check(zapLevel(record.Level), record.MessageTemplate)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, len(record.Properties)+4)
	if record.TraceID != "" {
		fields = append(fields,
			zap.String("trace_id", record.TraceID),
			zap.String("span_id", record.SpanID),
		)
		if record.ParentSpanID != "" {
			fields = append(fields, zap.String("parent_span_id", record.ParentSpanID))
		}
	}
	for _, f := range record.Properties {
		fields = append(fields, zapField(f))
	}
	if record.Err != nil {
		fields = append(fields, zap.Error(record.Err))
	}
	if !record.Timestamp.IsZero() {
		ce.Time = record.Timestamp
	}
	ce.Write(fields...)
}

// zapLevel never maps to zapcore.FatalLevel: zap exits the process on Fatal
// writes and a logging adapter must not.
func zapLevel(l logs.Level) zapcore.Level {
	switch l {
	case logs.TRACE, logs.DEBUG:
		return zapcore.DebugLevel
	case logs.INFO:
		return zapcore.InfoLevel
	case logs.WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func zapField(f logs.Field) zap.Field {
	switch f.Type() {
	case logs.IntType:
		return zap.Int(f.Key(), f.IntValue())
	case logs.Int64Type:
		return zap.Int64(f.Key(), f.Int64Value())
	case logs.StringType:
		return zap.String(f.Key(), f.StringValue())
	case logs.BoolType:
		return zap.Bool(f.Key(), f.BoolValue())
	case logs.DurationType:
		return zap.Duration(f.Key(), f.DurationValue())
	case logs.TimeType:
		return zap.Time(f.Key(), f.TimeValue())
	case logs.StringsType:
		return zap.Strings(f.Key(), f.StringsValue())
	case logs.ErrorType:
		return zap.NamedError(f.Key(), f.ErrorValue())
	case logs.StringerType:
		return zap.Stringer(f.Key(), f.StringerValue())
	case logs.AnyType:
		return zap.Any(f.Key(), f.AnyValue())
	default:
		return zap.String(f.Key(), "<invalid>")
	}
}
