// Package throttle rate-limits progress events per scan group so a slow
// consumer is not flooded while a large range is being probed.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle gates progress emission per group key. The first event for a
// group always passes; afterwards at most one event passes per interval.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	limiters map[string]*rate.Limiter
}

// New creates a throttle with the given minimum interval between events.
// A zero or negative interval disables throttling.
func New(interval time.Duration) *Throttle {
	return NewWithClock(interval, time.Now)
}

// NewWithClock creates a throttle using the given clock function.
func NewWithClock(interval time.Duration, now func() time.Time) *Throttle {
	return &Throttle{
		interval: interval,
		now:      now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a progress event for the group may be emitted now.
// On true, the group's emission slot is consumed for the next interval.
func (t *Throttle) Allow(group string) bool {
	if t.interval <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	limiter, ok := t.limiters[group]
	if !ok {
		// A fresh limiter starts with a full burst, so the first progress
		// event for a group is never throttled.
		limiter = rate.NewLimiter(rate.Every(t.interval), 1)
		t.limiters[group] = limiter
	}

	return limiter.AllowN(t.now(), 1)
}

// Forget drops the throttle state for a group once its scan has finished.
func (t *Throttle) Forget(group string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.limiters, group)
}
