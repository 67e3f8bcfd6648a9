package clock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikolayk812/broka-order/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	now atomic.Pointer[time.Time]
}

func newFakeClock(t time.Time) *fakeClock {
	c := &fakeClock{}
	c.Set(t)
	return c
}

func (c *fakeClock) Set(t time.Time) { c.now.Store(&t) }
func (c *fakeClock) Now() time.Time  { return *c.now.Load() }

func TestWatcher_PublishesTransitions(t *testing.T) {
	defer goleak.VerifyNone(t)

	fc := newFakeClock(at(17, 59, 30))
	w, err := clock.NewWatcher(clock.DefaultHours, 5*time.Millisecond, zaptest.NewLogger(t), clock.WithNow(fc.Now))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := receive(t, w.Updates())
	assert.False(t, first.Open)
	assert.Equal(t, "Fechado - Abrimos às 18:00", first.Message)

	fc.Set(at(18, 0, 0))
	second := receive(t, w.Updates())
	assert.True(t, second.Open)
	assert.True(t, w.Current().Open)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	_, ok := <-w.Updates()
	assert.False(t, ok, "updates channel must be closed")
}

func TestWatcher_SkipsUnchangedMinute(t *testing.T) {
	defer goleak.VerifyNone(t)

	fc := newFakeClock(at(20, 0, 1))
	w, err := clock.NewWatcher(clock.DefaultHours, 2*time.Millisecond, nil, clock.WithNow(fc.Now))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	receive(t, w.Updates())

	fc.Set(at(20, 0, 40))
	select {
	case s := <-w.Updates():
		t.Fatalf("unexpected update %+v", s)
	case <-time.After(30 * time.Millisecond):
	}

	fc.Set(at(20, 1, 0))
	next := receive(t, w.Updates())
	assert.Equal(t, 1, next.Now.Minute())

	cancel()
	<-done
}

func TestWatcher_CurrentBeforeRun(t *testing.T) {
	fc := newFakeClock(at(23, 0, 0))
	w, err := clock.NewWatcher(clock.DefaultHours, time.Second, nil, clock.WithNow(fc.Now))
	require.NoError(t, err)

	assert.True(t, w.Current().Open)
}

func TestNewWatcher_InvalidInterval(t *testing.T) {
	_, err := clock.NewWatcher(clock.DefaultHours, 0, nil)
	require.EqualError(t, err, "interval must be positive")
}

func receive(t *testing.T, ch <-chan clock.Status) clock.Status {
	t.Helper()

	select {
	case s, ok := <-ch:
		require.True(t, ok, "updates channel closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for status")
		return clock.Status{}
	}
}
