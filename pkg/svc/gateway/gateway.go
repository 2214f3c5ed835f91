// Package gateway is the console's only entry point to the Kubernetes API.
//
// It composes the workload and Flux clients and translates API failures into
// the opserr taxonomy, so callers never inspect Kubernetes status errors.
package gateway

import (
	"context"
	"fmt"
	"iter"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/client/flux"
	"github.com/devantler-tech/tgops/pkg/client/workloads"
	"github.com/devantler-tech/tgops/pkg/k8s"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/sirupsen/logrus"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
)

// Gateway reads and mutates cluster objects on behalf of the dispatcher.
type Gateway struct {
	releases  *flux.Client
	workloads *workloads.Client
}

// New creates a Gateway from a set of cluster clients.
func New(clients *k8s.Clients, logger logrus.FieldLogger) *Gateway {
	gw := NewWithClients(clients.Typed, clients.Dynamic)
	gw.releases.WithLogger(logger)

	return gw
}

// NewWithClients creates a Gateway from explicit clients (for testing).
func NewWithClients(typed kubernetes.Interface, dynamicClient dynamic.Interface) *Gateway {
	return &Gateway{
		releases:  flux.NewClient(dynamicClient),
		workloads: workloads.NewClient(typed),
	}
}

// ListLabeledWorkloads returns the pods labeled key=value in all namespaces.
func (g *Gateway) ListLabeledWorkloads(
	ctx context.Context,
	key, value string,
) iter.Seq2[ops.Workload, error] {
	return classifySeq(g.workloads.Labeled(ctx, key, value))
}

// ListHelmReleases returns the status of every HelmRelease in the cluster.
func (g *Gateway) ListHelmReleases(ctx context.Context) iter.Seq2[ops.HelmReleaseStatus, error] {
	return classifySeq(g.releases.HelmReleases(ctx))
}

// AnnotateForReconciliation asks Flux to reconcile the HelmRelease immediately.
func (g *Gateway) AnnotateForReconciliation(ctx context.Context, release ops.ResourceID) error {
	err := g.releases.RequestReconcile(ctx, release.Namespace, release.Name)
	if err != nil {
		return fmt.Errorf("annotate helmrelease %s: %w", release, classify(err))
	}

	return nil
}

func classifySeq[T any](seq iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item, err := range seq {
			if err != nil {
				err = classify(err)
			}

			if !yield(item, err) {
				return
			}
		}
	}
}

// classify wraps err with the taxonomy sentinel matching the API failure while
// keeping the original error in the chain for logging.
func classify(err error) error {
	switch {
	case apierrors.IsNotFound(err), apierrors.IsGone(err):
		return fmt.Errorf("%w: %w", opserr.ErrResourceNotFound, err)
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return fmt.Errorf("%w: %w", opserr.ErrClusterForbidden, err)
	default:
		return fmt.Errorf("%w: %w", opserr.ErrClusterUnavailable, err)
	}
}
