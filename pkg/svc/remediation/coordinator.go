// Package remediation serializes reconcile requests so that at most one
// cluster mutation is in flight per HelmRelease.
package remediation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Annotator requests reconciliation of a HelmRelease.
type Annotator interface {
	AnnotateForReconciliation(ctx context.Context, release ops.ResourceID) error
}

// Request is an in-flight remediation. It is dropped when the gateway call
// returns and never outlives the process.
type Request struct {
	ID        uuid.UUID
	Resource  ops.ResourceID
	Requester ops.Identity
	IssuedAt  time.Time
}

// Coordinator owns the pending set of remediation requests.
type Coordinator struct {
	annotator Annotator
	logger    logrus.FieldLogger
	now       func() time.Time

	mu      sync.Mutex
	pending map[ops.ResourceID]Request
}

// NewCoordinator creates a Coordinator that issues mutations through annotator.
func NewCoordinator(annotator Annotator, logger logrus.FieldLogger) *Coordinator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Coordinator{
		annotator: annotator,
		logger:    logger,
		now:       time.Now,
		pending:   make(map[ops.ResourceID]Request),
	}
}

// RequestReconcile asks the cluster to reconcile resource on behalf of requester.
//
// If a request for the same resource is already in flight, it returns an error
// wrapping opserr.ErrAlreadyPending without touching the cluster. The pending
// entry is removed when the gateway call returns, whether it succeeded, failed
// or was cancelled.
func (c *Coordinator) RequestReconcile(
	ctx context.Context,
	resource ops.ResourceID,
	requester ops.Identity,
) (Request, error) {
	request, err := c.acquire(resource, requester)
	if err != nil {
		return Request{}, err
	}
	defer c.release(request)

	log := c.logger.WithFields(logrus.Fields{
		"request_id": request.ID.String(),
		"resource":   resource.String(),
		"requester":  requester.String(),
	})
	log.Info("requesting reconciliation")

	err = c.annotator.AnnotateForReconciliation(ctx, resource)
	if err != nil {
		log.WithError(err).WithField("kind", opserr.KindOf(err)).Warn("reconciliation request failed")

		return request, err
	}

	log.WithField("duration", c.now().Sub(request.IssuedAt)).Info("reconciliation requested")

	return request, nil
}

// Pending returns the in-flight request for resource, if any.
func (c *Coordinator) Pending(resource ops.ResourceID) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	request, ok := c.pending[resource]

	return request, ok
}

// Snapshot returns a copy of all in-flight requests.
func (c *Coordinator) Snapshot() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	requests := make([]Request, 0, len(c.pending))
	for _, request := range c.pending {
		requests = append(requests, request)
	}

	return requests
}

func (c *Coordinator) acquire(resource ops.ResourceID, requester ops.Identity) (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.pending[resource]; ok {
		return Request{}, fmt.Errorf(
			"%w: %s requested by %s at %s",
			opserr.ErrAlreadyPending,
			resource,
			existing.Requester,
			existing.IssuedAt.Format(time.RFC3339),
		)
	}

	request := Request{
		ID:        uuid.New(),
		Resource:  resource,
		Requester: requester,
		IssuedAt:  c.now(),
	}
	c.pending[resource] = request

	return request, nil
}

func (c *Coordinator) release(request Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.pending[request.Resource]; ok && current.ID == request.ID {
		delete(c.pending, request.Resource)
	}
}
