package dispatcher_test

import (
	"context"
	"iter"
	"sync"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/stretchr/testify/mock"
)

func seqOf[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}

		if err != nil {
			var zero T

			yield(zero, err)
		}
	}
}

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) ListLabeledWorkloads(ctx context.Context, key, value string) iter.Seq2[ops.Workload, error] {
	args := m.Called(ctx, key, value)

	return args.Get(0).(iter.Seq2[ops.Workload, error]) //nolint:forcetypeassert // test double
}

func (m *gatewayMock) ListHelmReleases(ctx context.Context) iter.Seq2[ops.HelmReleaseStatus, error] {
	args := m.Called(ctx)

	return args.Get(0).(iter.Seq2[ops.HelmReleaseStatus, error]) //nolint:forcetypeassert // test double
}

func (m *gatewayMock) AnnotateForReconciliation(ctx context.Context, release ops.ResourceID) error {
	args := m.Called(ctx, release)

	return args.Error(0)
}

type observation struct {
	name    string
	labels  metrics.Labels
	seconds float64
}

// recorderSpy captures every metric call.
type recorderSpy struct {
	mu        sync.Mutex
	counters  []observation
	latencies []observation
}

func (r *recorderSpy) IncrementCounter(name string, labels metrics.Labels) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counters = append(r.counters, observation{name: name, labels: labels})
}

func (r *recorderSpy) ObserveLatency(name string, labels metrics.Labels, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latencies = append(r.latencies, observation{name: name, labels: labels, seconds: seconds})
}

func (r *recorderSpy) counted(name string) []metrics.Labels {
	r.mu.Lock()
	defer r.mu.Unlock()

	var labels []metrics.Labels

	for _, counter := range r.counters {
		if counter.name == name {
			labels = append(labels, counter.labels)
		}
	}

	return labels
}

func (r *recorderSpy) observed() []observation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]observation(nil), r.latencies...)
}

type throttleStub bool

func (t throttleStub) Allow(ops.Identity) bool { return bool(t) }
