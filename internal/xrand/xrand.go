package xrand

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

type Rand interface {
	Uint64() uint64
}

type r struct {
	m *sync.Mutex

	r *rand.Rand
}

type option func(r *r)

func WithLock() option {
	return func(r *r) {
		r.m = &sync.Mutex{}
	}
}

func New(opts ...option) Rand {
	r := &r{
		r: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec
	}
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}

	return r
}

func (r *r) Uint64() uint64 {
	if r.m != nil {
		r.m.Lock()
		defer r.m.Unlock()
	}

	return uint64(r.r.Int63n(math.MaxInt64))<<1 | uint64(r.r.Int63n(2))
}
