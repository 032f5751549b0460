package bus

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPublishDeliversExactlyOnce(t *testing.T) {
	b := New()

	var first, second atomic.Int64
	s1 := b.Subscribe(nil, func(string, string, interface{}) {
		first.Add(1)
	})
	s2 := b.Subscribe(func(source string) bool {
		return source == "db"
	}, func(string, string, interface{}) {
		second.Add(1)
	})
	defer func() {
		_ = s1.Unsubscribe()
		_ = s2.Unsubscribe()
	}()

	b.Publish("db", "query", nil)
	b.Publish("http", "request", nil)

	require.EqualValues(t, 2, first.Load())
	require.EqualValues(t, 1, second.Load())
}

func TestHasListener(t *testing.T) {
	b := New()
	require.False(t, b.HasListener("db"))

	s := b.Subscribe(func(source string) bool {
		return source == "db"
	}, func(string, string, interface{}) {})

	require.True(t, b.HasListener("db"))
	require.False(t, b.HasListener("http"))

	require.NoError(t, s.Unsubscribe())
	require.False(t, b.HasListener("db"))
}

func TestMaterialize(t *testing.T) {
	b := New()

	accept := b.Subscribe(nil, func(string, string, interface{}) {})
	defer func() {
		_ = accept.Unsubscribe()
	}()
	require.True(t, b.Materialize(StartRequest{Source: "db", Name: "query"}))

	decline := b.Subscribe(nil, func(string, string, interface{}) {},
		WithMaterializer(func(req StartRequest) bool {
			return req.Source != "db"
		}),
	)
	defer func() {
		_ = decline.Unsubscribe()
	}()

	require.False(t, b.Materialize(StartRequest{Source: "db", Name: "query"}))
	require.True(t, b.Materialize(StartRequest{Source: "http", Name: "request"}))
}

func TestUnsubscribeIdempotent(t *testing.T) {
	b := New()

	var closes atomic.Int64
	s := b.Subscribe(nil, func(string, string, interface{}) {},
		WithOnClose(func() error {
			closes.Add(1)

			return nil
		}),
	)

	require.NoError(t, s.Unsubscribe())
	require.NoError(t, s.Unsubscribe())
	require.EqualValues(t, 1, closes.Load())
}

func TestUnsubscribeReportsTeardownFailure(t *testing.T) {
	b := New()

	teardownErr := errors.New("teardown failed")
	s := b.Subscribe(nil, func(string, string, interface{}) {},
		WithOnClose(func() error {
			return teardownErr
		}),
	)

	err := s.Unsubscribe()
	require.ErrorIs(t, err, teardownErr)
	require.ErrorIs(t, err, errSubscriptionTeardown)

	// teardown already ran, second call is a no-op
	require.NoError(t, s.Unsubscribe())
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := New()

	var s *Subscription
	var calls atomic.Int64
	s = b.Subscribe(nil, func(string, string, interface{}) {
		calls.Add(1)
		_ = s.Unsubscribe()
	})

	b.Publish("db", "query", nil)
	b.Publish("db", "query", nil)

	require.EqualValues(t, 1, calls.Load())
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := New()

	var delivered atomic.Int64
	g := errgroup.Group{}
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			s := b.Subscribe(nil, func(string, string, interface{}) {
				delivered.Add(1)
			})

			return s.Unsubscribe()
		})
		g.Go(func() error {
			b.Publish("db", "query", nil)

			return nil
		})
	}
	require.NoError(t, g.Wait())
}
