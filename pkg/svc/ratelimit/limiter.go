// Package ratelimit throttles chat callers independently of each other.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per caller identity.
// A nil Limiter, or one created with a non-positive rate, admits everything.
type Limiter struct {
	mu         sync.Mutex
	limiters   map[ops.Identity]*rate.Limiter
	lastAccess map[ops.Identity]time.Time
	limit      rate.Limit
	burst      int
	now        func() time.Time
}

// New creates a Limiter allowing perMinute events per identity with a 10%
// burst (minimum 1).
func New(perMinute int) *Limiter {
	if perMinute <= 0 {
		return nil
	}

	return &Limiter{
		limiters:   make(map[ops.Identity]*rate.Limiter),
		lastAccess: make(map[ops.Identity]time.Time),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      max(1, perMinute/10),
		now:        time.Now,
	}
}

// Allow reports whether id may issue another event now.
func (l *Limiter) Allow(id ops.Identity) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[id]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[id] = limiter
	}

	now := l.now()
	l.lastAccess[id] = now

	return limiter.AllowN(now, 1)
}

// Evict drops the buckets of identities idle for longer than maxAge.
func (l *Limiter) Evict(maxAge time.Duration) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxAge)

	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.limiters, id)
			delete(l.lastAccess, id)
		}
	}
}

// Run evicts idle buckets every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) error {
	if l == nil {
		<-ctx.Done()

		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Evict(interval)
		}
	}
}
