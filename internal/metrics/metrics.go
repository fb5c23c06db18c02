// Package metrics records search pipeline counters in a private Prometheus
// registry and exports them in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/harrison/filefinder/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "file_finder"

// Metrics holds the pipeline collectors. It implements finder.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	NamesEnumerated  prometheus.Counter
	TraversalErrors  prometheus.Counter
	BuffersCreated   prometheus.Counter
	BuffersInFlight  prometheus.Gauge
	BuffersRecycled  prometheus.Counter
	MatchesFound     *prometheus.CounterVec
	RunDuration      prometheus.Gauge
	TerminatedEarly  prometheus.Gauge
	BufferDispatches prometheus.Counter
}

// NewMetrics creates and registers all collectors on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		NamesEnumerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "names_enumerated_total",
			Help:      "Filesystem entries enumerated by the producer",
		}),
		TraversalErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traversal_errors_total",
			Help:      "Entries skipped because they could not be read",
		}),
		BuffersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffers_created_total",
			Help:      "Buffers primed or minted by the pool",
		}),
		BufferDispatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffer_dispatches_total",
			Help:      "Filled buffers fanned out to the workers",
		}),
		BuffersRecycled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffers_recycled_total",
			Help:      "Dispatched buffers returned to the pool after every worker finished",
		}),
		BuffersInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffers_in_flight",
			Help:      "Dispatched buffers not yet recycled",
		}),
		MatchesFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Filenames found to contain a needle",
		}, []string{"needle"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last search",
		}),
		TerminatedEarly: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "terminated_early",
			Help:      "1 when the last search was stopped before completion",
		}),
	}
}

// New creates Metrics on a fresh private registry.
func New() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// NameEnumerated counts one filename read from the tree.
func (m *Metrics) NameEnumerated() { m.NamesEnumerated.Inc() }

// TraversalFailed counts one entry skipped because it could not be read.
func (m *Metrics) TraversalFailed() { m.TraversalErrors.Inc() }

// BufferMinted counts one buffer created by the pool.
func (m *Metrics) BufferMinted() { m.BuffersCreated.Inc() }

// BufferDispatched counts a buffer fanned out to the workers and marks it in flight.
func (m *Metrics) BufferDispatched() {
	m.BufferDispatches.Inc()
	m.BuffersInFlight.Inc()
}

// BufferRecycled counts a buffer returned to the pool after every worker finished it.
func (m *Metrics) BufferRecycled() {
	m.BuffersRecycled.Inc()
	m.BuffersInFlight.Dec()
}

// MatchFound counts one match for needle.
func (m *Metrics) MatchFound(needle string) {
	m.MatchesFound.WithLabelValues(needle).Inc()
}

// ObserveResult records the run-level outcome.
func (m *Metrics) ObserveResult(result models.Result) {
	m.RunDuration.Set(result.Duration.Seconds())
	if result.TerminatedEarly {
		m.TerminatedEarly.Set(1)
	} else {
		m.TerminatedEarly.Set(0)
	}
}

// WriteTextfile writes every collector to path in the Prometheus text
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
