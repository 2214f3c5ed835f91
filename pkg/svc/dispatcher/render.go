package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/health"
	corev1 "k8s.io/api/core/v1"
)

const (
	noWorkloadsText  = "No pods found with label tgops=true"
	allHealthyText   = "All HelmReleases are healthy! 🎉"
	defaultImageTag  = "latest"
	unknownValue     = "Unknown"
	noErrorMessage   = "No error message provided"
	hoursPerDay      = 24
	releasesHeadline = "⚠️ Found unhealthy HelmReleases:"
)

func phaseMarker(phase string) string {
	switch corev1.PodPhase(phase) {
	case corev1.PodRunning:
		return "🟢"
	case corev1.PodFailed:
		return "🔴"
	default:
		return "🟡"
	}
}

// formatAge renders the largest whole unit of elapsed time: days, hours or minutes.
func formatAge(created, now time.Time) string {
	if created.IsZero() {
		return unknownValue
	}

	age := now.Sub(created)

	switch {
	case age >= hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd", int(age.Hours())/hoursPerDay)
	case age >= time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	case age > 0:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	default:
		return "0m"
	}
}

// imageTag returns the tag of an image reference, "latest" when untagged.
// A colon that belongs to a registry host:port is not a tag separator.
func imageTag(image string) string {
	ref, _, _ := strings.Cut(image, "@")

	colon := strings.LastIndex(ref, ":")
	if colon < 0 || colon < strings.LastIndex(ref, "/") {
		return defaultImageTag
	}

	return ref[colon+1:]
}

// imageVersion returns the part of a tag before the first hyphen.
func imageVersion(tag string) string {
	version, _, _ := strings.Cut(tag, "-")

	return version
}

func renderWorkloads(workloads []ops.Workload, now time.Time) string {
	var builder strings.Builder

	for i, workload := range workloads {
		if i > 0 {
			builder.WriteString("\n")
		}

		fmt.Fprintf(&builder, "%s %s\n", phaseMarker(workload.Phase), workload.ID())
		fmt.Fprintf(&builder, "   Status: %s\n", workload.Phase)

		if workload.Image != "" {
			tag := imageTag(workload.Image)
			fmt.Fprintf(&builder, "   Image tag: %s\n", tag)
			fmt.Fprintf(&builder, "   Version: %s\n", imageVersion(tag))
		}

		fmt.Fprintf(&builder, "   Age: %s\n", formatAge(workload.CreatedAt, now))
	}

	return builder.String()
}

func releaseMarker(entry ReleaseEntry) string {
	switch {
	case entry.Status.Reconciling:
		return "♻️"
	case entry.Verdict.State == health.Stalled:
		return "⛔️"
	default:
		return "🔄"
	}
}

func releaseState(entry ReleaseEntry) string {
	switch {
	case entry.Status.Reconciling:
		return "RECONCILING"
	case entry.Verdict.State == health.Stalled:
		return "STALLED"
	default:
		return "UNKNOWN"
	}
}

func renderReleases(entries []ReleaseEntry) string {
	var builder strings.Builder

	builder.WriteString(releasesHeadline)
	builder.WriteString("\n")

	for _, entry := range entries {
		lastTransition := unknownValue
		if !entry.Status.LastTransitionTime.IsZero() {
			lastTransition = entry.Status.LastTransitionTime.UTC().Format(time.RFC3339)
		}

		message := entry.Status.Message
		if message == "" {
			message = noErrorMessage
		}

		fmt.Fprintf(&builder, "\n%s %s\n", releaseMarker(entry), entry.Verdict.Resource)
		fmt.Fprintf(&builder, "├─ Status: %s\n", releaseState(entry))
		fmt.Fprintf(&builder, "├─ Last Transition: %s\n", lastTransition)
		fmt.Fprintf(&builder, "└─ Error: %s\n", message)
	}

	return builder.String()
}
