package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a controllable time source for limiter tests.
func fakeClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	t.Parallel()

	limiter := New(time.Minute)
	const max = 5

	for i := 0; i < max; i++ {
		assert.False(t, limiter.TooManyAttempts("client", max),
			"attempt %d should be allowed", i+1)
		limiter.Hit("client")
	}

	assert.True(t, limiter.TooManyAttempts("client", max),
		"attempt %d should be blocked", max+1)
}

func TestLimiterWindowReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now, clock := fakeClock(start)
	limiter := NewWithClock(time.Minute, clock)

	for i := 0; i < 5; i++ {
		limiter.Hit("client")
	}
	assert.True(t, limiter.TooManyAttempts("client", 5))

	// Just before the window elapses the client is still blocked.
	*now = start.Add(59 * time.Second)
	assert.True(t, limiter.TooManyAttempts("client", 5))

	// Once the window elapses the counter resets to zero.
	*now = start.Add(time.Minute)
	assert.False(t, limiter.TooManyAttempts("client", 5))
	assert.Equal(t, 1, limiter.Hit("client"), "fresh window should start counting from one")
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := New(time.Minute)

	for i := 0; i < 5; i++ {
		limiter.Hit("alice")
	}

	assert.True(t, limiter.TooManyAttempts("alice", 5))
	assert.False(t, limiter.TooManyAttempts("bob", 5))
}

func TestLimiterClear(t *testing.T) {
	t.Parallel()

	limiter := New(time.Minute)

	for i := 0; i < 5; i++ {
		limiter.Hit("client")
	}
	assert.True(t, limiter.TooManyAttempts("client", 5))

	limiter.Clear("client")

	assert.False(t, limiter.TooManyAttempts("client", 5))
	assert.Equal(t, 1, limiter.Hit("client"))
}

func TestLimiterHitStartsNewWindowAfterExpiry(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now, clock := fakeClock(start)
	limiter := NewWithClock(time.Minute, clock)

	assert.Equal(t, 1, limiter.Hit("client"))
	assert.Equal(t, 2, limiter.Hit("client"))

	*now = start.Add(2 * time.Minute)
	assert.Equal(t, 1, limiter.Hit("client"))
}
