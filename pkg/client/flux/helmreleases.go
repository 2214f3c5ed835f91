package flux

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	helmv2 "github.com/fluxcd/helm-controller/api/v2"
	"github.com/fluxcd/pkg/apis/meta"
	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/json"
	"k8s.io/client-go/dynamic"
)

const (
	listPageSize = 100
	fieldManager = "tgops"
	// UndecodableMessage replaces the ready message of objects that do not
	// decode into the helm-controller API. The decode error is only logged.
	UndecodableMessage = "status could not be decoded"
)

// HelmReleaseGVR is the resource served by the helm-controller.
//
//nolint:gochecknoglobals // derived from the helm-controller API group version
var HelmReleaseGVR = helmv2.GroupVersion.WithResource("helmreleases")

// Client lists HelmReleases and requests their reconciliation.
type Client struct {
	dynamic dynamic.Interface
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewClient creates a Client backed by the given dynamic client.
func NewClient(dynamicClient dynamic.Interface) *Client {
	return &Client{dynamic: dynamicClient, logger: logrus.StandardLogger(), now: time.Now}
}

// WithLogger sets the logger used for objects that fail to decode.
func (c *Client) WithLogger(logger logrus.FieldLogger) *Client {
	if logger != nil {
		c.logger = logger
	}

	return c
}

// HelmReleases returns a sequence over all HelmReleases in all namespaces.
//
// Pages are fetched lazily while the sequence is consumed; ranging over the
// sequence again performs a fresh listing. A listing failure is yielded once
// as the error element and ends the sequence.
func (c *Client) HelmReleases(ctx context.Context) iter.Seq2[ops.HelmReleaseStatus, error] {
	return func(yield func(ops.HelmReleaseStatus, error) bool) {
		opts := metav1.ListOptions{Limit: listPageSize}

		for {
			list, err := c.dynamic.Resource(HelmReleaseGVR).List(ctx, opts)
			if err != nil {
				yield(ops.HelmReleaseStatus{}, fmt.Errorf("list helmreleases: %w", err))

				return
			}

			for i := range list.Items {
				status, err := StatusFromUnstructured(&list.Items[i])
				if err != nil {
					c.logger.WithError(err).WithFields(logrus.Fields{
						"namespace": status.Namespace,
						"name":      status.Name,
					}).Warn("helmrelease status could not be decoded")
				}

				if !yield(status, nil) {
					return
				}
			}

			if list.GetContinue() == "" {
				return
			}

			opts.Continue = list.GetContinue()
		}
	}
}

// RequestReconcile sets the reconcile request annotation on a HelmRelease.
// A merge patch is used so the write never conflicts with the controller's
// own status updates.
func (c *Client) RequestReconcile(ctx context.Context, namespace, name string) error {
	patch, err := json.Marshal(map[string]any{
		"metadata": map[string]any{
			"annotations": map[string]string{
				meta.ReconcileRequestAnnotation: c.now().Format(time.RFC3339Nano),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("build reconcile patch: %w", err)
	}

	_, err = c.dynamic.Resource(HelmReleaseGVR).Namespace(namespace).Patch(
		ctx,
		name,
		types.MergePatchType,
		patch,
		metav1.PatchOptions{FieldManager: fieldManager},
	)
	if err != nil {
		return fmt.Errorf("trigger helmrelease reconciliation: %w", err)
	}

	return nil
}

// StatusFromUnstructured converts a HelmRelease object into a status snapshot.
// Objects that do not decode into the helm-controller API still yield a
// snapshot, with an Unknown ready state and UndecodableMessage, alongside
// the decode error.
func StatusFromUnstructured(obj *unstructured.Unstructured) (ops.HelmReleaseStatus, error) {
	var release helmv2.HelmRelease

	err := runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, &release)
	if err != nil {
		return ops.HelmReleaseStatus{
			Name:      obj.GetName(),
			Namespace: obj.GetNamespace(),
			Ready:     ops.ConditionUnknown,
			Message:   UndecodableMessage,
		}, fmt.Errorf("decode helmrelease %s/%s: %w", obj.GetNamespace(), obj.GetName(), err)
	}

	return StatusFromHelmRelease(&release), nil
}

// StatusFromHelmRelease maps a typed HelmRelease onto a status snapshot.
func StatusFromHelmRelease(release *helmv2.HelmRelease) ops.HelmReleaseStatus {
	status := ops.HelmReleaseStatus{
		Name:      release.Name,
		Namespace: release.Namespace,
		Ready:     ops.ConditionUnknown,
		Suspended: release.Spec.Suspend,
	}

	ready := latestCondition(release.Status.Conditions, meta.ReadyCondition)
	if ready != nil {
		status.Ready = conditionStatus(ready.Status)
		status.Message = ready.Message
		status.LastTransitionTime = ready.LastTransitionTime.Time
	}

	reconciling := latestCondition(release.Status.Conditions, meta.ReconcilingCondition)
	status.Reconciling = reconciling != nil &&
		reconciling.Status == metav1.ConditionTrue &&
		reconciling.Reason == meta.ProgressingReason

	return status
}

// latestCondition returns the condition of the given type with the most recent
// transition time. Later entries win ties.
func latestCondition(conditions []metav1.Condition, conditionType string) *metav1.Condition {
	var latest *metav1.Condition

	for i := range conditions {
		condition := &conditions[i]
		if condition.Type != conditionType {
			continue
		}

		if latest == nil || !condition.LastTransitionTime.Before(&latest.LastTransitionTime) {
			latest = condition
		}
	}

	return latest
}

func conditionStatus(status metav1.ConditionStatus) ops.ConditionStatus {
	switch status {
	case metav1.ConditionTrue:
		return ops.ConditionTrue
	case metav1.ConditionFalse:
		return ops.ConditionFalse
	default:
		return ops.ConditionUnknown
	}
}
