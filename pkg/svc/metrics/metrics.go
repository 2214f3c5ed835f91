package metrics

import (
	"net/http"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metric names.
const (
	CommandsTotal             = "telegram_bot_commands_total"
	CallbacksTotal            = "telegram_bot_callbacks_total"
	ErrorsTotal               = "telegram_bot_errors_total"
	UnauthorizedAttemptsTotal = "telegram_bot_unauthorized_attempts_total"
	CommandLatencySeconds     = "telegram_bot_command_latency_seconds"
)

// Labels is a set of metric label values keyed by label name.
type Labels = map[string]string

// Recorder is the sink components report to.
type Recorder interface {
	IncrementCounter(name string, labels Labels)
	ObserveLatency(name string, labels Labels, seconds float64)
}

// Discard is a Recorder that drops every observation.
//
//nolint:gochecknoglobals // stateless sink
var Discard Recorder = discard{}

type discard struct{}

func (discard) IncrementCounter(string, Labels)        {}
func (discard) ObserveLatency(string, Labels, float64) {}

//nolint:gochecknoglobals // bucket layout tuned for chat round trips
var latencyBuckets = []float64{0.1, 0.5, 1, 2, 5, 10}

// Prometheus is a Recorder backed by a private Prometheus registry.
type Prometheus struct {
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	logger     logrus.FieldLogger
}

// NewPrometheus creates and registers the console's metric families.
// Unknown metric names and label sets are logged and dropped, never fatal.
func NewPrometheus(logger logrus.FieldLogger) *Prometheus {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	recorder := &Prometheus{
		registry: prometheus.NewRegistry(),
		counters: map[string]*prometheus.CounterVec{
			CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: CommandsTotal,
				Help: "Number of commands received by the bot",
			}, []string{"command", "user_id"}),
			CallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: CallbacksTotal,
				Help: "Number of callback queries processed",
			}, []string{"action", "user_id"}),
			ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: ErrorsTotal,
				Help: "Number of errors encountered",
			}, []string{"type", "command"}),
			UnauthorizedAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: UnauthorizedAttemptsTotal,
				Help: "Number of unauthorized access attempts",
			}, []string{"user_id"}),
		},
		histograms: map[string]*prometheus.HistogramVec{
			CommandLatencySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    CommandLatencySeconds,
				Help:    "Command processing latency in seconds",
				Buckets: latencyBuckets,
			}, []string{"command"}),
		},
		logger: logger,
	}

	recorder.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, name := range sortedKeys(recorder.counters) {
		recorder.registry.MustRegister(recorder.counters[name])
	}

	for _, name := range sortedKeys(recorder.histograms) {
		recorder.registry.MustRegister(recorder.histograms[name])
	}

	return recorder
}

// IncrementCounter adds one to the named counter.
func (p *Prometheus) IncrementCounter(name string, labels Labels) {
	vec, ok := p.counters[name]
	if !ok {
		p.logger.WithField("metric", name).Warn("dropping increment for unknown counter")

		return
	}

	counter, err := vec.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		p.logger.WithError(err).WithField("metric", name).Warn("dropping increment with invalid labels")

		return
	}

	counter.Inc()
}

// ObserveLatency records seconds in the named histogram.
func (p *Prometheus) ObserveLatency(name string, labels Labels, seconds float64) {
	vec, ok := p.histograms[name]
	if !ok {
		p.logger.WithField("metric", name).Warn("dropping observation for unknown histogram")

		return
	}

	observer, err := vec.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		p.logger.WithError(err).WithField("metric", name).Warn("dropping observation with invalid labels")

		return
	}

	observer.Observe(seconds)
}

// Registry returns the registry holding the console's metric families.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler returns the Prometheus HTTP handler for the private registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
