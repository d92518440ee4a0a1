package ingest

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "xword"
	metricsSubsystem = "ingest"
)

// Metrics are the batch pipeline's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	puzzles  *prometheus.CounterVec
	warnings prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		puzzles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "puzzles_total",
			Help:      "Puzzles processed, by outcome (parsed, failed).",
		}, []string{"outcome"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "warnings_total",
			Help:      "Semantic warnings raised while parsing.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one batch run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
	}

	for _, c := range []prometheus.Collector{m.puzzles, m.warnings, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register ingest metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(r Report) {
	if m == nil {
		return
	}
	m.puzzles.WithLabelValues("parsed").Add(float64(r.Parsed))
	m.puzzles.WithLabelValues("failed").Add(float64(r.Failed))
	m.warnings.Add(float64(len(r.Warnings)))
	m.duration.Observe(r.Duration.Seconds())
}
