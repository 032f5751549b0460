package xtest

import (
	"context"

	"github.com/spanlog/spanlog-go/internal/xsync"
	"github.com/spanlog/spanlog-go/logs"
)

var _ logs.Logger = (*Recorder)(nil)

// Recorder is a logs.Logger capturing records for assertions. Safe for
// concurrent use.
type Recorder struct {
	m       xsync.Mutex
	records []logs.Record
}

func (r *Recorder) Log(_ context.Context, record logs.Record) {
	r.m.WithLock(func() {
		r.records = append(r.records, record)
	})
}

func (r *Recorder) Records() []logs.Record {
	return xsync.WithLock(&r.m, func() []logs.Record {
		return append([]logs.Record(nil), r.records...)
	})
}

func (r *Recorder) Len() int {
	return len(r.Records())
}
