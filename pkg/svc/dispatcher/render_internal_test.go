package dispatcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImageTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"nginx":                                "latest",
		"nginx:1.27":                           "1.27",
		"ghcr.io/acme/api:1.9.0-abc123":        "1.9.0-abc123",
		"registry.local:5000/acme/api":         "latest",
		"registry.local:5000/acme/api:2.0.1":   "2.0.1",
		"ghcr.io/acme/api:3.1@sha256:deadbeef": "3.1",
	}

	for image, want := range tests {
		assert.Equal(t, want, imageTag(image), image)
	}
}

func TestImageVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.9.0", imageVersion("1.9.0-abc123"))
	assert.Equal(t, "latest", imageVersion("latest"))
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Unknown", formatAge(time.Time{}, now))
	assert.Equal(t, "3d", formatAge(now.Add(-80*time.Hour), now))
	assert.Equal(t, "23h", formatAge(now.Add(-23*time.Hour-59*time.Minute), now))
	assert.Equal(t, "42m", formatAge(now.Add(-42*time.Minute), now))
	assert.Equal(t, "0m", formatAge(now.Add(time.Minute), now))
}

func TestPhaseMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🟢", phaseMarker("Running"))
	assert.Equal(t, "🔴", phaseMarker("Failed"))
	assert.Equal(t, "🟡", phaseMarker("Pending"))
	assert.Equal(t, "🟡", phaseMarker("Succeeded"))
}
