package workloads_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/client/workloads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	clienttesting "k8s.io/client-go/testing"
)

var errConnectionRefused = errors.New("connection refused")

func newPod(namespace, name string, podLabels map[string]string, containers ...corev1.Container) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			Labels:            podLabels,
			CreationTimestamp: metav1.NewTime(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
		},
		Spec:   corev1.PodSpec{Containers: containers},
		Status: corev1.PodStatus{Phase: corev1.PodRunning},
	}
}

func collect(t *testing.T, client *workloads.Client) []ops.Workload {
	t.Helper()

	var result []ops.Workload

	for workload, err := range client.Labeled(context.Background(), "tgops", "true") {
		require.NoError(t, err)

		result = append(result, workload)
	}

	return result
}

func TestLabeled_FiltersByExactLabel(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset(
		newPod("prod", "api", map[string]string{"tgops": "true"}),
		newPod("dev", "worker", map[string]string{"tgops": "true", "tier": "backend"}),
		newPod("prod", "other", map[string]string{"tgops": "false"}),
		newPod("prod", "unlabeled", nil),
	)

	result := collect(t, workloads.NewClient(clientset))

	names := make([]string, 0, len(result))
	for _, workload := range result {
		names = append(names, workload.ID().String())
	}

	assert.ElementsMatch(t, []string{"prod/api", "dev/worker"}, names)
}

func TestLabeled_FollowsContinueToken(t *testing.T) {
	t.Parallel()

	var requests []metav1.ListOptions

	labeled := map[string]string{"tgops": "true"}

	clientset := fake.NewClientset()
	clientset.PrependReactor("list", "pods", func(action clienttesting.Action) (bool, runtime.Object, error) {
		lister, ok := action.(interface{ GetListOptions() metav1.ListOptions })
		if !ok {
			return true, nil, errors.New("list action carries no options")
		}

		opts := lister.GetListOptions()
		requests = append(requests, opts)

		switch opts.Continue {
		case "":
			return true, &corev1.PodList{
				ListMeta: metav1.ListMeta{Continue: "page-2"},
				Items:    []corev1.Pod{*newPod("prod", "api", labeled)},
			}, nil
		case "page-2":
			return true, &corev1.PodList{
				Items: []corev1.Pod{*newPod("dev", "worker", labeled)},
			}, nil
		default:
			return true, nil, fmt.Errorf("unexpected continue token %q", opts.Continue)
		}
	})

	result := collect(t, workloads.NewClient(clientset))

	require.Len(t, result, 2)
	assert.Equal(t, "prod/api", result[0].ID().String())
	assert.Equal(t, "dev/worker", result[1].ID().String())

	require.Len(t, requests, 2)
	assert.Equal(t, int64(100), requests[0].Limit)
	assert.Equal(t, "tgops=true", requests[0].LabelSelector)
	assert.Empty(t, requests[0].Continue)
	assert.Equal(t, "page-2", requests[1].Continue)
	assert.Equal(t, "tgops=true", requests[1].LabelSelector)
}

func TestLabeled_ListError(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset()
	clientset.PrependReactor("list", "pods", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, nil, errConnectionRefused
	})

	var errs []error

	for _, err := range workloads.NewClient(clientset).Labeled(context.Background(), "tgops", "true") {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], errConnectionRefused)
	assert.Contains(t, errs[0].Error(), "tgops=true")
}

func TestWorkloadFromPod_PicksMainContainer(t *testing.T) {
	t.Parallel()

	pod := newPod("prod", "api", map[string]string{"tgops": "true"},
		corev1.Container{Name: "sidecar", Image: "envoy:1.30"},
		corev1.Container{Name: "main-api", Image: "ghcr.io/acme/api:1.9.0-abc123"},
	)

	workload := workloads.WorkloadFromPod(pod)

	assert.Equal(t, "ghcr.io/acme/api:1.9.0-abc123", workload.Image)
	assert.Equal(t, "Running", workload.Phase)
	assert.Equal(t, map[string]string{"tgops": "true"}, workload.Labels)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), workload.CreatedAt.UTC())
}

func TestWorkloadFromPod_NoMainContainer(t *testing.T) {
	t.Parallel()

	workload := workloads.WorkloadFromPod(newPod("prod", "api", nil, corev1.Container{Name: "app", Image: "nginx"}))

	assert.Empty(t, workload.Image)
}
