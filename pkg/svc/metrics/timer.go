package metrics

import "time"

// Timer measures the time elapsed since it was created.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Observe records the elapsed time in seconds on the named histogram.
func (t *Timer) Observe(recorder Recorder, name string, labels Labels) {
	recorder.ObserveLatency(name, labels, t.Duration().Seconds())
}
