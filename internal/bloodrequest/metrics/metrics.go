package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the blood request module.
type Metrics struct {
	// Submissions by urgency
	Submissions *prometheus.CounterVec

	// Urgent broadcasts that failed to publish
	BroadcastFailures prometheus.Counter

	// Requests purged by the cleanup worker
	Purged prometheus.Counter
}

// New creates a Metrics instance with all blood request metrics registered.
func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeline_blood_requests_total",
			Help: "Total blood request submissions by urgency",
		}, []string{"urgent"}),

		BroadcastFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifeline_blood_request_broadcast_failures_total",
			Help: "Total urgent broadcasts that failed to publish",
		}),

		Purged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifeline_blood_requests_purged_total",
			Help: "Total requests deleted after the retention window",
		}),
	}
}

// IncrementSubmission counts one submission.
func (m *Metrics) IncrementSubmission(urgent bool) {
	if m != nil {
		label := "false"
		if urgent {
			label = "true"
		}
		m.Submissions.WithLabelValues(label).Inc()
	}
}

// IncrementBroadcastFailure counts one failed urgent broadcast.
func (m *Metrics) IncrementBroadcastFailure() {
	if m != nil {
		m.BroadcastFailures.Inc()
	}
}

// AddPurged counts requests removed by a cleanup pass.
func (m *Metrics) AddPurged(n int) {
	if m != nil && n > 0 {
		m.Purged.Add(float64(n))
	}
}
