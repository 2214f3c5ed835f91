package ratelimit

import "time"

// SetNow replaces the limiter clock.
func (l *Limiter) SetNow(now func() time.Time) {
	l.now = now
}

// Tracked returns the number of identities currently holding a bucket.
func (l *Limiter) Tracked() int {
	if l == nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}
