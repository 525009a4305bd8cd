package scheduler

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScheduler_Schedule(t *testing.T) {
	t.Run("Fires exactly once after the delay", func(t *testing.T) {
		// Given: a scheduler and a counting callback
		s := newTestScheduler()
		var calls atomic.Int32

		// When: a callback is scheduled with a short delay
		handle := s.Schedule("test", 10*time.Millisecond, func() { calls.Add(1) })

		// Then: it fires once
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
		assert.True(t, handle.(*Handle).Fired())
	})

	t.Run("Canceled callback never fires", func(t *testing.T) {
		// Given: a scheduled callback
		s := newTestScheduler()
		var calls atomic.Int32
		handle := s.Schedule("test", 20*time.Millisecond, func() { calls.Add(1) })

		// When: it is canceled before the delay elapses
		handle.Cancel()

		// Then: it never runs
		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(0), calls.Load())
		assert.True(t, handle.(*Handle).Canceled())
	})

	t.Run("Cancel after firing is a no-op", func(t *testing.T) {
		s := newTestScheduler()
		done := make(chan struct{})
		handle := s.Schedule("test", time.Millisecond, func() { close(done) })

		<-done
		handle.Cancel()
		handle.Cancel()

		assert.False(t, handle.(*Handle).Canceled())
	})

	t.Run("Panicking callback is recovered", func(t *testing.T) {
		s := newTestScheduler()
		handle := s.Schedule("test", time.Millisecond, func() { panic("boom") })

		require.Eventually(t, handle.(*Handle).Fired, time.Second, 5*time.Millisecond)
	})
}

func TestHandle_CancelNil(t *testing.T) {
	var handle *Handle

	assert.NotPanics(t, handle.Cancel)
}
