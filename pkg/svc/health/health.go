// Package health classifies HelmRelease status snapshots into the states the
// console acts on.
package health

import "github.com/devantler-tech/tgops/pkg/apis/ops"

// State is the classified health of a HelmRelease.
type State string

// Health states.
const (
	Healthy   State = "Healthy"
	Stalled   State = "Stalled"
	Suspended State = "Suspended"
	Unknown   State = "Unknown"
)

// Actionable reports whether a reconcile may be offered for the state.
func (s State) Actionable() bool {
	return s == Stalled || s == Unknown
}

// Verdict pairs a resource with its classified state.
type Verdict struct {
	Resource ops.ResourceID
	State    State
}

// Classify maps a status snapshot to a Verdict. Suspension takes precedence
// over readiness; a suspended release is never actionable.
func Classify(status ops.HelmReleaseStatus) Verdict {
	verdict := Verdict{Resource: status.ID()}

	switch {
	case status.Suspended:
		verdict.State = Suspended
	case status.Ready == ops.ConditionFalse:
		verdict.State = Stalled
	case status.Ready == ops.ConditionTrue:
		verdict.State = Healthy
	default:
		verdict.State = Unknown
	}

	return verdict
}
