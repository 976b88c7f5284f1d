package frame

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackRunsOnNextTickOnly(t *testing.T) {
	s := New()
	var got []time.Duration
	s.RequestFrame(func(now time.Duration) { got = append(got, now) })

	s.Tick(16 * time.Millisecond)
	s.Tick(32 * time.Millisecond)
	assert.Equal(t, []time.Duration{16 * time.Millisecond}, got)
	assert.Equal(t, uint64(2), s.Frames())
	assert.Equal(t, 32*time.Millisecond, s.Now())
}

func TestReRequestRunsOncePerFrame(t *testing.T) {
	s := New()
	count := 0
	var loop Callback
	loop = func(time.Duration) {
		count++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		s.Tick(time.Duration(i) * time.Millisecond)
	}
	assert.Equal(t, 5, count)
	frames, _ := s.Pending()
	assert.Equal(t, 1, frames)
}

func TestCancelFrame(t *testing.T) {
	s := New()
	ran := false
	id := s.RequestFrame(func(time.Duration) { ran = true })
	s.CancelFrame(id)
	s.CancelFrame(id)
	s.CancelFrame(12345)
	s.Tick(0)
	assert.False(t, ran)
}

func TestCancelDuringTick(t *testing.T) {
	s := New()
	ranSecond := false
	var second ID
	s.RequestFrame(func(time.Duration) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Duration) { ranSecond = true })

	s.Tick(0)
	assert.False(t, ranSecond)
}

func TestPostedTasksRunBeforeFrames(t *testing.T) {
	s := New()
	var order []string
	s.RequestFrame(func(time.Duration) { order = append(order, "frame") })
	s.Post(func() { order = append(order, "task") })

	_, tasks := s.Pending()
	require.Equal(t, 1, tasks)
	s.Tick(0)
	assert.Equal(t, []string{"task", "frame"}, order)
}

func TestPostFromGoroutines(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(func() { count++ })
		}()
	}
	wg.Wait()
	s.Tick(0)
	assert.Equal(t, 50, count)
}

func TestRunTickerStopsAtLimit(t *testing.T) {
	s := New()
	count := 0
	var loop Callback
	loop = func(time.Duration) {
		count++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	require.NoError(t, RunTicker(context.Background(), s, 500, 4))
	assert.Equal(t, 4, count)
}

func TestRunTickerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunTicker(ctx, New(), 60, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
