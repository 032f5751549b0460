package background

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spanlog/spanlog-go/internal/xtest"
)

func TestWorkerDelivers(t *testing.T) {
	ctx := xtest.Context(t)
	w := NewWorker(8)

	var delivered atomic.Int64
	for i := 0; i < 5; i++ {
		require.True(t, w.Enqueue("task", func() {
			delivered.Add(1)
		}))
	}
	require.NoError(t, w.Close(ctx))
	require.EqualValues(t, 5, delivered.Load())
}

func TestWorkerDropsWhenFull(t *testing.T) {
	ctx := xtest.Context(t)
	w := NewWorker(1)

	blocked := make(chan struct{})
	release := make(chan struct{})
	require.True(t, w.Enqueue("blocker", func() {
		close(blocked)
		<-release
	}))
	<-blocked

	// the single queue slot fills, the next enqueue is refused
	require.True(t, w.Enqueue("queued", func() {}))
	require.False(t, w.Enqueue("dropped", func() {}))

	close(release)
	require.NoError(t, w.Close(ctx))
}

func TestWorkerCloseTwice(t *testing.T) {
	ctx := xtest.Context(t)
	w := NewWorker(1)

	require.NoError(t, w.Close(ctx))
	require.ErrorIs(t, w.Close(ctx), ErrAlreadyClosed)
	require.False(t, w.Enqueue("late", func() {}))
}
