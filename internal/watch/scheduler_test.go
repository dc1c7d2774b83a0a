package watch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RescanRunsRepeatedly(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	var calls atomic.Int32
	id, err := s.ScheduleRescan(context.Background(), 20*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return errors.New("ignored")
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	after := calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no runs after Stop")
}

func TestScheduler_CancelledContextSkipsRuns(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	_, err = s.ScheduleRescan(ctx, 10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	s.Start()
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop() }()

	_, err = s.ScheduleRescan(context.Background(), 0, func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "must be positive")
}

func TestSerialized_WatcherAndRescanDoNotOverlap(t *testing.T) {
	var running, peak, calls atomic.Int32
	fn := Serialized(func(context.Context) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		calls.Add(1)
		return nil
	})

	s, err := NewScheduler()
	require.NoError(t, err)
	_, err = s.ScheduleRescan(context.Background(), 2*time.Millisecond, fn)
	require.NoError(t, err)
	s.Start()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = fn(context.Background())
		}()
	}
	wg.Wait()
	assert.Eventually(t, func() bool { return calls.Load() >= 10 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())

	assert.Equal(t, int32(1), peak.Load())
}
