// Package ratelimit provides a keyed fixed-window attempt counter used to
// limit failed logins and to throttle the public authentication endpoints.
// Each Limiter instance is independent; components that need separate
// windows (login limiter vs. request throttle) hold separate instances and
// never share counter state.
package ratelimit

import (
	"sync"
	"time"
)

// entry tracks the attempt count for one key within its current window.
type entry struct {
	count       int
	windowStart time.Time
}

// Limiter counts attempts per key inside a fixed window. Once the window
// elapses the counter resets to zero; it never merely decays. Safe for
// concurrent use: the counters are the only cross-request in-memory state
// the limiter owns.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration

	// timeFunc is injectable so tests can drive the window with a fake clock.
	timeFunc func() time.Time
}

// New creates a Limiter with the given window length.
func New(window time.Duration) *Limiter {
	return &Limiter{
		entries:  make(map[string]*entry),
		window:   window,
		timeFunc: time.Now,
	}
}

// NewWithClock creates a Limiter that reads time from the given function.
func NewWithClock(window time.Duration, timeFunc func() time.Time) *Limiter {
	l := New(window)
	l.timeFunc = timeFunc
	return l
}

// Hit records one attempt for key, starting a fresh window if the previous
// one has elapsed. Returns the attempt count inside the current window.
func (l *Limiter) Hit(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeFunc()
	e := l.entries[key]
	if e == nil || now.Sub(e.windowStart) >= l.window {
		e = &entry{windowStart: now}
		l.entries[key] = e
	}
	e.count++
	return e.count
}

// TooManyAttempts reports whether key has reached max attempts within the
// current window. An elapsed window counts as zero attempts.
func (l *Limiter) TooManyAttempts(key string, max int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil {
		return false
	}

	now := l.timeFunc()
	if now.Sub(e.windowStart) >= l.window {
		delete(l.entries, key)
		return false
	}

	return e.count >= max
}

// Clear resets the counter for key, e.g. after a successful login.
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
