package health_test

import (
	"testing"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/health"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     ops.HelmReleaseStatus
		want       health.State
		actionable bool
	}{
		{
			name:   "ready",
			status: ops.HelmReleaseStatus{Ready: ops.ConditionTrue},
			want:   health.Healthy,
		},
		{
			name:       "not ready",
			status:     ops.HelmReleaseStatus{Ready: ops.ConditionFalse},
			want:       health.Stalled,
			actionable: true,
		},
		{
			name:       "unknown readiness",
			status:     ops.HelmReleaseStatus{Ready: ops.ConditionUnknown},
			want:       health.Unknown,
			actionable: true,
		},
		{
			name:       "missing readiness",
			status:     ops.HelmReleaseStatus{},
			want:       health.Unknown,
			actionable: true,
		},
		{
			name:   "suspended and failing",
			status: ops.HelmReleaseStatus{Suspended: true, Ready: ops.ConditionFalse},
			want:   health.Suspended,
		},
		{
			name:   "suspended and unknown",
			status: ops.HelmReleaseStatus{Suspended: true, Ready: ops.ConditionUnknown},
			want:   health.Suspended,
		},
		{
			name:   "suspended and ready",
			status: ops.HelmReleaseStatus{Suspended: true, Ready: ops.ConditionTrue},
			want:   health.Suspended,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			testCase.status.Namespace = "prod"
			testCase.status.Name = "app1"

			verdict := health.Classify(testCase.status)

			assert.Equal(t, testCase.want, verdict.State)
			assert.Equal(t, testCase.actionable, verdict.State.Actionable())
			assert.Equal(t, ops.ResourceID{Namespace: "prod", Name: "app1"}, verdict.Resource)
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	t.Parallel()

	status := ops.HelmReleaseStatus{Namespace: "prod", Name: "app1", Ready: ops.ConditionFalse, Message: "install retries exhausted"}

	assert.Equal(t, health.Classify(status), health.Classify(status))
}
