package dispatcher

import (
	"context"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/sirupsen/logrus"
)

const (
	unauthorizedText = "⛔️ Sorry, you are not authorized to use this bot."
	rateLimitedText  = "⏳ Too many requests. Please wait a moment and try again."
)

// Stage inspects an event before routing. Returning true short-circuits the
// dispatch with the returned result.
type Stage func(ctx context.Context, event Event) (Result, bool)

// Authorizer decides whether an identity may use the console.
type Authorizer interface {
	IsAuthorized(id ops.Identity) bool
}

// Throttler decides whether an identity may issue another event now.
type Throttler interface {
	Allow(id ops.Identity) bool
}

// AuthorizeStage rejects identities outside the allowlist and counts the attempt.
func AuthorizeStage(guard Authorizer, recorder metrics.Recorder, logger logrus.FieldLogger) Stage {
	return func(_ context.Context, event Event) (Result, bool) {
		if guard.IsAuthorized(event.Identity) {
			return Result{}, false
		}

		recorder.IncrementCounter(metrics.UnauthorizedAttemptsTotal, metrics.Labels{
			"user_id": event.Identity.String(),
		})
		logger.WithError(opserr.ErrUnauthorized).WithFields(logrus.Fields{
			"identity": event.Identity.String(),
			"command":  event.Command,
			"callback": event.Callback,
		}).Warn("unauthorized access denied")

		return Result{
			Kind:      KindUnauthorized,
			Body:      unauthorizedText,
			ErrorKind: opserr.KindUnauthorized,
		}, true
	}
}

// RateLimitStage rejects identities exceeding their event budget.
func RateLimitStage(throttler Throttler, recorder metrics.Recorder, logger logrus.FieldLogger) Stage {
	return func(_ context.Context, event Event) (Result, bool) {
		if throttler.Allow(event.Identity) {
			return Result{}, false
		}

		recorder.IncrementCounter(metrics.ErrorsTotal, metrics.Labels{
			"type":    string(opserr.KindRateLimited),
			"command": commandLabel(event.Command),
		})
		logger.WithField("identity", event.Identity.String()).Info("rate limited")

		return Result{
			Kind:      KindRateLimited,
			Body:      rateLimitedText,
			ErrorKind: opserr.KindRateLimited,
		}, true
	}
}
