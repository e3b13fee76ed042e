// Package prom records workflow measurements as Prometheus collectors.
package prom

import (
	"time"

	"github.com/bnema/schedule-manager-cli/internal/workflow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "schedule_manager"
	subsystem = "planning"
)

type Metrics struct {
	registry *prometheus.Registry

	// BranchDuration is labelled by branch and status (ok, error).
	BranchDuration   *prometheus.HistogramVec
	BranchFailures   *prometheus.CounterVec
	LoopIterations   prometheus.Histogram
	// ScheduleChanges counts changes the adjuster applied, across iterations.
	ScheduleChanges  prometheus.Counter
	// LoopTerminations is labelled by reason.
	LoopTerminations *prometheus.CounterVec
}

var _ workflow.Observer = (*Metrics)(nil)

// New registers the collectors on registry, or on a fresh one when nil.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		BranchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "branch_duration_seconds",
			Help:      "Duration of each parallel query branch.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"branch", "status"}),
		BranchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "branch_failures_total",
			Help:      "Parallel query branches that failed.",
		}, []string{"branch"}),
		LoopIterations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "loop_iterations",
			Help:      "Critique/adjust iterations per optimization run.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		ScheduleChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "schedule_changes_total",
			Help:      "Schedule changes applied by the adjuster.",
		}),
		LoopTerminations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "loop_terminations_total",
			Help:      "Optimization runs by termination reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) BranchFinished(name string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		m.BranchFailures.WithLabelValues(name).Inc()
	}
	m.BranchDuration.WithLabelValues(name, status).Observe(elapsed.Seconds())
}

func (m *Metrics) IterationFinished(_, _, changes int) {
	m.ScheduleChanges.Add(float64(changes))
}

func (m *Metrics) LoopFinished(iterations int, reason workflow.TerminationReason) {
	m.LoopIterations.Observe(float64(iterations))
	m.LoopTerminations.WithLabelValues(string(reason)).Inc()
}

// WriteTextfile dumps the registry in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
