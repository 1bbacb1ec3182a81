package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module.
type Metrics struct {
	// Verdicts by eligibility and rejection reason
	Verdicts *prometheus.CounterVec

	// Full screening latency including persistence
	ScreenLatency prometheus.Histogram
}

// New creates a Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeline_screening_verdicts_total",
			Help: "Total screening verdicts by eligibility and reason",
		}, []string{"eligible", "reason"}),

		ScreenLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifeline_screening_duration_seconds",
			Help:    "Duration of screening evaluation including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementVerdict records one verdict.
func (m *Metrics) IncrementVerdict(eligible bool, reason string) {
	if m != nil {
		label := "false"
		if eligible {
			label = "true"
		}
		m.Verdicts.WithLabelValues(label, reason).Inc()
	}
}

// ObserveScreenLatency records the total screening duration.
func (m *Metrics) ObserveScreenLatency(d time.Duration) {
	if m != nil {
		m.ScreenLatency.Observe(d.Seconds())
	}
}
