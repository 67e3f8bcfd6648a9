package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Watcher re-evaluates the status on a fixed interval and publishes it through a
// single channel. A status is published on the first tick and afterwards only when
// the open flag or the displayed minute changes. Each value is fully computed
// before it is stored or sent.
type Watcher struct {
	hours    Hours
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger

	current atomic.Pointer[Status]
	updates chan Status
}

type Option func(*Watcher)

// WithNow replaces the wall clock, mostly for tests.
func WithNow(now func() time.Time) Option {
	return func(w *Watcher) {
		w.now = now
	}
}

func NewWatcher(hours Hours, interval time.Duration, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		hours:    hours,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		updates:  make(chan Status, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Updates is closed when Run returns.
func (w *Watcher) Updates() <-chan Status {
	return w.updates
}

// Current returns the last published status, evaluating it on demand before the
// first tick.
func (w *Watcher) Current() Status {
	if s := w.current.Load(); s != nil {
		return *s
	}
	return w.hours.Status(w.now())
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *Watcher) tick() {
	next := w.hours.Status(w.now())

	prev := w.current.Load()
	if prev != nil && !changed(*prev, next) {
		return
	}
	w.current.Store(&next)

	if prev != nil && prev.Open != next.Open {
		w.logger.Info("store status changed", zap.Bool("open", next.Open), zap.String("message", next.Message))
	}

	w.publish(next)
}

// publish keeps only the newest value when nobody has consumed the previous one.
func (w *Watcher) publish(s Status) {
	select {
	case w.updates <- s:
		return
	default:
	}

	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
}

func changed(prev, next Status) bool {
	if prev.Open != next.Open {
		return true
	}
	return !prev.Now.Truncate(time.Minute).Equal(next.Now.Truncate(time.Minute))
}
