package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
	block chan struct{}
}

func (r *countingRefresher) RefreshSnapshot(ctx context.Context) (int, error) {
	r.calls.Add(1)
	if r.block != nil {
		<-r.block
	}
	return 3, r.err
}

func TestScheduler(t *testing.T) {
	t.Run("Should refresh immediately on start", func(t *testing.T) {
		r := &countingRefresher{}
		s := New(r, "@every 1h")

		require.NoError(t, s.Start(context.Background()))
		defer s.Stop()

		assert.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("Should survive refresh errors", func(t *testing.T) {
		r := &countingRefresher{err: errors.New("db down")}
		s := New(r, "@every 1h")

		require.NoError(t, s.Start(context.Background()))
		defer s.Stop()

		assert.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("Should reject an invalid spec", func(t *testing.T) {
		s := New(&countingRefresher{}, "not a spec")
		assert.Error(t, s.Start(context.Background()))
	})

	t.Run("Should wait for the startup refresh on stop", func(t *testing.T) {
		r := &countingRefresher{block: make(chan struct{})}
		s := New(r, "@every 1h")
		require.NoError(t, s.Start(context.Background()))
		require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)

		stopped := make(chan struct{})
		go func() {
			s.Stop()
			close(stopped)
		}()

		select {
		case <-stopped:
			t.Fatal("Stop returned while the startup refresh was running")
		case <-time.After(50 * time.Millisecond):
		}

		close(r.block)
		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("Stop did not return after the refresh finished")
		}
	})

	t.Run("Should skip overlapping refreshes", func(t *testing.T) {
		r := &countingRefresher{block: make(chan struct{})}
		s := New(r, "@every 1h")

		go s.refresh(context.Background())
		require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)

		s.refresh(context.Background())
		assert.Equal(t, int32(1), r.calls.Load())

		close(r.block)
	})
}
