package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/devantler-tech/tgops/pkg/svc/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newLimiter(t *testing.T, perMinute int) (*ratelimit.Limiter, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := ratelimit.New(perMinute)
	require.NotNil(t, limiter)
	limiter.SetNow(clock.Now)

	return limiter, clock
}

func TestLimiter_BurstThenThrottle(t *testing.T) {
	t.Parallel()

	limiter, clock := newLimiter(t, 60)

	for range 6 {
		assert.True(t, limiter.Allow(42))
	}

	assert.False(t, limiter.Allow(42))

	clock.now = clock.now.Add(time.Second)
	assert.True(t, limiter.Allow(42))
}

func TestLimiter_IdentitiesAreIndependent(t *testing.T) {
	t.Parallel()

	limiter, _ := newLimiter(t, 1)

	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(2))
	assert.Equal(t, 2, limiter.Tracked())
}

func TestLimiter_Evict(t *testing.T) {
	t.Parallel()

	limiter, clock := newLimiter(t, 60)

	limiter.Allow(1)
	clock.now = clock.now.Add(10 * time.Minute)
	limiter.Allow(2)

	limiter.Evict(5 * time.Minute)

	assert.Equal(t, 1, limiter.Tracked())
}

func TestLimiter_DisabledAdmitsEverything(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.New(0)

	assert.Nil(t, limiter)

	for range 100 {
		assert.True(t, limiter.Allow(42))
	}

	assert.Zero(t, limiter.Tracked())
	assert.NotPanics(t, func() { limiter.Evict(time.Minute) })
}

func TestLimiter_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.New(60)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- limiter.Run(ctx, time.Millisecond) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
