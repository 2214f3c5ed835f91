package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/health"
	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/devantler-tech/tgops/pkg/svc/remediation"
	"github.com/sirupsen/logrus"
)

const (
	greetingText = "Hello! I am a Kubernetes-aware Telegram bot. Use /help to see available commands."
	helpText     = "Available commands:\n" +
		"/checkreleases - List unhealthy Flux HelmReleases and manage them\n" +
		"/apps - List apps status\n" +
		"/logs [app] - Show log links for applications (optional: filter by app name)"
	noLogLinksText = "No application log links are configured."
)

// Gateway is the read side of the cluster used by the dispatcher.
type Gateway interface {
	ListLabeledWorkloads(ctx context.Context, key, value string) iter.Seq2[ops.Workload, error]
	ListHelmReleases(ctx context.Context) iter.Seq2[ops.HelmReleaseStatus, error]
}

// Remediator issues reconcile requests.
type Remediator interface {
	RequestReconcile(ctx context.Context, resource ops.ResourceID, requester ops.Identity) (remediation.Request, error)
}

// Dependencies are the collaborators of a Dispatcher.
type Dependencies struct {
	Guard      Authorizer
	Gateway    Gateway
	Remediator Remediator
	// Limiter is optional; nil disables rate limiting.
	Limiter  Throttler
	Recorder metrics.Recorder
	Logger   logrus.FieldLogger
	// LogLinks maps application names to log URLs.
	LogLinks map[string]string
}

// Dispatcher routes events to the console's commands.
type Dispatcher struct {
	gateway    Gateway
	remediator Remediator
	recorder   metrics.Recorder
	logger     logrus.FieldLogger
	logLinks   map[string]string
	stages     []Stage
	now        func() time.Time
}

// New creates a Dispatcher. The allowlist check always runs before the rate
// limiter so unknown callers cannot consume a bucket.
func New(deps Dependencies) *Dispatcher {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.Discard
	}

	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	stages := []Stage{AuthorizeStage(deps.Guard, recorder, logger)}
	if deps.Limiter != nil {
		stages = append(stages, RateLimitStage(deps.Limiter, recorder, logger))
	}

	return &Dispatcher{
		gateway:    deps.Gateway,
		remediator: deps.Remediator,
		recorder:   recorder,
		logger:     logger,
		logLinks:   maps.Clone(deps.LogLinks),
		stages:     stages,
		now:        time.Now,
	}
}

// Dispatch handles a single event and never returns a Go error: failures are
// reported as results of kind Error.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) Result {
	name := commandLabel(event.Command)

	timer := metrics.NewTimer()
	defer timer.Observe(d.recorder, metrics.CommandLatencySeconds, metrics.Labels{"command": name})

	d.recordReceived(event, name)

	for _, stage := range d.stages {
		if result, stop := stage(ctx, event); stop {
			return result
		}
	}

	result, err := d.route(ctx, event)
	if err != nil {
		return d.failure(event, name, err)
	}

	return result
}

func (d *Dispatcher) recordReceived(event Event, name string) {
	if event.Callback {
		d.recorder.IncrementCounter(metrics.CallbacksTotal, metrics.Labels{
			"action":  name,
			"user_id": event.Identity.String(),
		})

		return
	}

	d.recorder.IncrementCounter(metrics.CommandsTotal, metrics.Labels{
		"command": name,
		"user_id": event.Identity.String(),
	})
}

func (d *Dispatcher) route(ctx context.Context, event Event) (Result, error) {
	switch event.Command {
	case CommandStart:
		return Result{Kind: KindText, Body: greetingText}, nil
	case CommandHelp:
		return Result{Kind: KindText, Body: helpText}, nil
	case CommandApps:
		return d.apps(ctx)
	case CommandCheckReleases:
		return d.checkReleases(ctx)
	case CommandLogs:
		return d.logs(event), nil
	case CommandReconcile:
		return d.reconcile(ctx, event)
	default:
		return Result{
			Kind: KindText,
			Body: fmt.Sprintf("Unknown command %q. Use /help to see available commands.", event.Command),
		}, nil
	}
}

func (d *Dispatcher) apps(ctx context.Context) (Result, error) {
	var workloads []ops.Workload

	for workload, err := range d.gateway.ListLabeledWorkloads(ctx, WorkloadLabelKey, WorkloadLabelValue) {
		if err != nil {
			return Result{}, err
		}

		workloads = append(workloads, workload)
	}

	if len(workloads) == 0 {
		return Result{Kind: KindWorkloads, Body: noWorkloadsText}, nil
	}

	return Result{
		Kind:      KindWorkloads,
		Title:     fmt.Sprintf("%d labeled workloads", len(workloads)),
		Body:      renderWorkloads(workloads, d.now()),
		Workloads: workloads,
	}, nil
}

func (d *Dispatcher) checkReleases(ctx context.Context) (Result, error) {
	var (
		entries []ReleaseEntry
		actions []Action
	)

	for status, err := range d.gateway.ListHelmReleases(ctx) {
		if err != nil {
			return Result{}, err
		}

		verdict := health.Classify(status)
		if !verdict.State.Actionable() {
			continue
		}

		entries = append(entries, ReleaseEntry{Status: status, Verdict: verdict})

		if !status.Reconciling {
			actions = append(actions, Action{
				Label: "🔄 Reconcile " + verdict.Resource.String(),
				ID:    EncodeAction(CommandReconcile, verdict.Resource.String()),
			})
		}
	}

	if len(entries) == 0 {
		return Result{Kind: KindReleases, Body: allHealthyText}, nil
	}

	return Result{
		Kind:     KindReleases,
		Title:    fmt.Sprintf("%d unhealthy HelmReleases", len(entries)),
		Body:     renderReleases(entries),
		Actions:  actions,
		Releases: entries,
	}, nil
}

// logs lists configured log links. A command filters by case-insensitive
// substring; a callback selects exactly one application, ignoring case.
func (d *Dispatcher) logs(event Event) Result {
	if len(d.logLinks) == 0 {
		return Result{Kind: KindText, Body: noLogLinksText}
	}

	if event.Callback {
		name, ok := d.logLinkName(event.Payload)
		if !ok {
			return Result{Kind: KindText, Body: fmt.Sprintf("❌ No log link found for %s", event.Payload)}
		}

		return Result{Kind: KindText, Title: name, Body: fmt.Sprintf("📊 Logs for %s: %s", name, d.logLinks[name])}
	}

	filter := strings.ToLower(strings.TrimSpace(event.Payload))

	var (
		builder strings.Builder
		actions []Action
	)

	builder.WriteString("📋 Application Log Links:\n")

	for _, name := range slices.Sorted(maps.Keys(d.logLinks)) {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}

		fmt.Fprintf(&builder, "\n📊 %s: %s", name, d.logLinks[name])
		actions = append(actions, Action{Label: "📊 " + name, ID: EncodeAction(CommandLogs, name)})
	}

	if len(actions) == 0 {
		return Result{Kind: KindText, Body: fmt.Sprintf("No log links found for application matching '%s'", filter)}
	}

	return Result{Kind: KindText, Body: builder.String(), Actions: actions}
}

// logLinkName resolves an application name to its configured key. Config
// files are read through viper, which lowercases map keys.
func (d *Dispatcher) logLinkName(name string) (string, bool) {
	if _, ok := d.logLinks[name]; ok {
		return name, true
	}

	for _, key := range slices.Sorted(maps.Keys(d.logLinks)) {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}

	return "", false
}

func (d *Dispatcher) reconcile(ctx context.Context, event Event) (Result, error) {
	resource, err := ParseResourceID(event.Payload)
	if err != nil {
		return Result{}, err
	}

	request, err := d.remediator.RequestReconcile(ctx, resource, event.Identity)

	switch {
	case errors.Is(err, opserr.ErrAlreadyPending):
		return Result{
			Kind:      KindAlreadyPending,
			Body:      fmt.Sprintf("⏳ Reconciliation of %s is already in progress", resource),
			ErrorKind: opserr.KindAlreadyPending,
		}, nil
	case err != nil:
		return Result{}, err
	}

	d.logger.WithFields(logrus.Fields{
		"request_id": request.ID.String(),
		"identity":   event.Identity.String(),
		"namespace":  resource.Namespace,
		"name":       resource.Name,
	}).Info("reconciliation started")

	return Result{
		Kind: KindCompleted,
		Body: fmt.Sprintf("✅ Started reconciliation for %s\nFlux will now reconcile the HelmRelease.", resource),
	}, nil
}

// failure converts err into a user-safe result and records it. The raw error
// is logged and never shown to the caller.
func (d *Dispatcher) failure(event Event, name string, err error) Result {
	kind := opserr.KindOf(err)

	d.recorder.IncrementCounter(metrics.ErrorsTotal, metrics.Labels{
		"type":    string(kind),
		"command": name,
	})
	d.logger.WithError(err).WithFields(logrus.Fields{
		"identity":  event.Identity.String(),
		"command":   name,
		"kind":      kind,
		"retryable": opserr.Retryable(err),
	}).Error("command failed")

	return Result{
		Kind:      KindError,
		Body:      userMessage(kind, event),
		ErrorKind: kind,
	}
}

func userMessage(kind opserr.Kind, event Event) string {
	switch kind {
	case opserr.KindClusterUnavailable:
		return "❌ The cluster is unreachable right now. Please try again shortly."
	case opserr.KindClusterForbidden:
		return "❌ The bot is not permitted to perform this operation. Ask an administrator to check its RBAC."
	case opserr.KindResourceNotFound:
		if target := strings.TrimSpace(event.Payload); target != "" {
			return fmt.Sprintf("❌ %s no longer exists.", target)
		}

		return "❌ The resource no longer exists."
	case opserr.KindInvalidArgument:
		return "❌ Malformed request. Expected namespace/name."
	default:
		return "❌ Something went wrong while processing the command."
	}
}

func commandLabel(command string) string {
	switch command {
	case CommandStart, CommandHelp, CommandApps, CommandCheckReleases, CommandLogs, CommandReconcile:
		return command
	default:
		return commandUnknown
	}
}
