package metrics_test

import (
	"testing"
	"time"

	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/stretchr/testify/assert"
)

type latencyCapture struct {
	name    string
	labels  metrics.Labels
	seconds float64
}

func (c *latencyCapture) IncrementCounter(string, metrics.Labels) {}

func (c *latencyCapture) ObserveLatency(name string, labels metrics.Labels, seconds float64) {
	c.name, c.labels, c.seconds = name, labels, seconds
}

func TestTimer_Duration(t *testing.T) {
	t.Parallel()

	timer := metrics.NewTimer()

	time.Sleep(20 * time.Millisecond)

	assert.GreaterOrEqual(t, timer.Duration(), 20*time.Millisecond)
}

func TestTimer_Observe(t *testing.T) {
	t.Parallel()

	capture := &latencyCapture{}
	timer := metrics.NewTimer()

	time.Sleep(10 * time.Millisecond)
	timer.Observe(capture, metrics.CommandLatencySeconds, metrics.Labels{"command": "apps"})

	assert.Equal(t, metrics.CommandLatencySeconds, capture.name)
	assert.Equal(t, metrics.Labels{"command": "apps"}, capture.labels)
	assert.GreaterOrEqual(t, capture.seconds, 0.01)
}
