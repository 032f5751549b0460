package trace

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/spanlog/spanlog-go/internal/xrand"
)

// TraceID identifies a trace, the set of spans forming one hierarchy.
type TraceID [16]byte

// SpanID identifies a single span within a trace.
type SpanID [8]byte

var spanIDRand = xrand.New(xrand.WithLock())

// NewTraceID returns a new random trace identity.
func NewTraceID() TraceID {
	return TraceID(uuid.New())
}

func newSpanID() (id SpanID) {
	binary.BigEndian.PutUint64(id[:], spanIDRand.Uint64())

	return id
}

func (id TraceID) IsZero() bool {
	return id == TraceID{}
}

func (id TraceID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseTraceID parses the lowercase hex form produced by TraceID.String.
func ParseTraceID(s string) (id TraceID, err error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(id) {
		return TraceID{}, errInvalidTraceID
	}
	copy(id[:], b)

	return id, nil
}

func (id SpanID) IsZero() bool {
	return id == SpanID{}
}

func (id SpanID) String() string {
	return hex.EncodeToString(id[:])
}
