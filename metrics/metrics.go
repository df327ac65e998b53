// Package metrics provides Prometheus metrics for the notes pipeline.
package metrics

import (
	"time"

	"github.com/poiesic/minutes/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "minutes"

// Run results.
const (
	ResultSuccess       = "success"
	ResultNoTranscripts = "no_transcripts"
	ResultFailed        = "failed"
)

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Run metrics
	RunsTotal    *prometheus.CounterVec
	RunsInFlight prometheus.Gauge
	RunDuration  prometheus.Histogram
	RunsWaited   prometheus.Counter

	// Stage metrics
	StageOutcomes *prometheus.CounterVec

	// Input metrics
	SegmentsProcessed prometheus.Counter

	// Background dispatch
	SubmitErrors      prometheus.Counter
	TriggersCoalesced prometheus.Counter
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics creates all metrics and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of processing runs by result",
		}, []string{"result"}),
		RunsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_in_flight",
			Help:      "Number of processing runs currently executing",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of processing runs in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		RunsWaited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_waited_total",
			Help:      "Total number of process calls that waited for an earlier run of the same meeting",
		}),
		StageOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_outcomes_total",
			Help:      "Total number of stage completions by stage and outcome",
		}, []string{"stage", "outcome"}),
		SegmentsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_processed_total",
			Help:      "Total number of transcript segments read by processing runs",
		}),
		SubmitErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submit_errors_total",
			Help:      "Total number of background runs rejected by a saturated or released pool",
		}),
		TriggersCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_coalesced_total",
			Help:      "Total number of background triggers folded into an already scheduled run",
		}),
	}
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(result string, elapsed time.Duration) {
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}

// RecordStages records the outcome of every stage in a run.
func (m *Metrics) RecordStages(reports []core.StageReport) {
	for _, r := range reports {
		m.StageOutcomes.WithLabelValues(r.Stage, string(r.Outcome)).Inc()
	}
}
