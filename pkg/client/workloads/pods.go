// Package workloads lists the labeled pods operators are allowed to inspect.
package workloads

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
)

const (
	listPageSize = 100
	// MainContainerPrefix marks the container whose image represents the application version.
	MainContainerPrefix = "main-"
)

// Client lists pods through the typed clientset.
type Client struct {
	typed kubernetes.Interface
}

// NewClient creates a Client.
func NewClient(typed kubernetes.Interface) *Client {
	return &Client{typed: typed}
}

// Labeled returns a sequence over the pods in all namespaces carrying the
// exact label key=value. Pages are fetched lazily, nothing is cached.
func (c *Client) Labeled(ctx context.Context, key, value string) iter.Seq2[ops.Workload, error] {
	selector := labels.SelectorFromSet(labels.Set{key: value}).String()

	return func(yield func(ops.Workload, error) bool) {
		opts := metav1.ListOptions{LabelSelector: selector, Limit: listPageSize}

		for {
			pods, err := c.typed.CoreV1().Pods(metav1.NamespaceAll).List(ctx, opts)
			if err != nil {
				yield(ops.Workload{}, fmt.Errorf("list pods with %s: %w", selector, err))

				return
			}

			for i := range pods.Items {
				if !yield(WorkloadFromPod(&pods.Items[i]), nil) {
					return
				}
			}

			if pods.Continue == "" {
				return
			}

			opts.Continue = pods.Continue
		}
	}
}

// WorkloadFromPod maps a pod onto a workload snapshot.
func WorkloadFromPod(pod *corev1.Pod) ops.Workload {
	workload := ops.Workload{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Labels:    pod.Labels,
		Phase:     string(pod.Status.Phase),
		CreatedAt: pod.CreationTimestamp.Time,
	}

	for _, container := range pod.Spec.Containers {
		if strings.HasPrefix(container.Name, MainContainerPrefix) {
			workload.Image = container.Image

			break
		}
	}

	return workload
}
