package ops

import (
	"strconv"
	"time"
)

// Identity is the opaque numeric id of a chat caller.
type Identity int64

// String returns the decimal form used in metric labels and log fields.
func (i Identity) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// ResourceID identifies a namespaced cluster object.
type ResourceID struct {
	Namespace string
	Name      string
}

// String returns the "namespace/name" form.
func (r ResourceID) String() string {
	return r.Namespace + "/" + r.Name
}

// Workload is a labeled pod as seen by a single listing.
type Workload struct {
	Name      string
	Namespace string
	Labels    map[string]string
	// Phase is the pod phase (Running, Pending, Failed, ...).
	Phase string
	// Image is the image of the first container named "main-*", empty if none.
	Image     string
	CreatedAt time.Time
}

// ID returns the resource identity of the workload.
func (w Workload) ID() ResourceID {
	return ResourceID{Namespace: w.Namespace, Name: w.Name}
}

// ConditionStatus is the tri-state value of a status condition.
type ConditionStatus string

// Condition status values, matching the Kubernetes condition vocabulary.
const (
	ConditionTrue    ConditionStatus = "True"
	ConditionFalse   ConditionStatus = "False"
	ConditionUnknown ConditionStatus = "Unknown"
)

// HelmReleaseStatus is a read-only snapshot of a HelmRelease's reconciliation state.
type HelmReleaseStatus struct {
	Name      string
	Namespace string
	// Ready is taken from the most recent Ready condition; Unknown when absent.
	Ready              ConditionStatus
	Message            string
	LastTransitionTime time.Time
	Suspended          bool
	// Reconciling is set while the controller reports Reconciling=True/Progressing.
	Reconciling bool
}

// ID returns the resource identity of the release.
func (s HelmReleaseStatus) ID() ResourceID {
	return ResourceID{Namespace: s.Namespace, Name: s.Name}
}
