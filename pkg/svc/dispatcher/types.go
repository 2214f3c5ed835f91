package dispatcher

import (
	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/health"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
)

// Kind is the outcome class of a dispatch.
type Kind string

// Result kinds.
const (
	KindText           Kind = "Text"
	KindWorkloads      Kind = "Workloads"
	KindReleases       Kind = "Releases"
	KindCompleted      Kind = "Completed"
	KindAlreadyPending Kind = "AlreadyPending"
	KindUnauthorized   Kind = "Unauthorized"
	KindRateLimited    Kind = "RateLimited"
	KindError          Kind = "Error"
)

// Command names understood by the dispatcher.
const (
	CommandStart         = "start"
	CommandHelp          = "help"
	CommandApps          = "apps"
	CommandCheckReleases = "checkreleases"
	CommandLogs          = "logs"
	CommandReconcile     = "reconcile"

	// commandUnknown labels metrics for unrecognized commands.
	commandUnknown = "unknown"
)

// WorkloadLabelKey and WorkloadLabelValue select the workloads listed by apps.
const (
	WorkloadLabelKey   = "tgops"
	WorkloadLabelValue = "true"
)

// Event is a single inbound command or button press.
type Event struct {
	Identity ops.Identity
	Command  string
	// Payload is the command argument or the callback payload; may be empty.
	Payload string
	// Callback is set when the event comes from a button press.
	Callback bool
}

// Action is an affordance the transport renders as a button.
type Action struct {
	Label string
	ID    string
}

// ReleaseEntry is an actionable HelmRelease in a Releases result.
type ReleaseEntry struct {
	Status  ops.HelmReleaseStatus
	Verdict health.Verdict
}

// Result is the outcome of one dispatch.
type Result struct {
	Kind    Kind
	Title   string
	Body    string
	Actions []Action
	// ErrorKind is set for Error, Unauthorized and RateLimited results.
	ErrorKind opserr.Kind

	Workloads []ops.Workload
	Releases  []ReleaseEntry
}
