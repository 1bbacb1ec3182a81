package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the donation lifecycle module.
type Metrics struct {
	// Donation events recorded
	Recorded prometheus.Counter

	// Badge promotions by the tier reached
	BadgePromotions *prometheus.CounterVec

	// Ledgers whose cached state disagreed with the event history
	LedgerRepairs prometheus.Counter

	// Full record latency including persistence
	RecordLatency prometheus.Histogram
}

// New creates a Metrics instance with all donation metrics registered.
func New() *Metrics {
	return &Metrics{
		Recorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifeline_donations_recorded_total",
			Help: "Total donation events recorded",
		}),

		BadgePromotions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeline_donation_badge_promotions_total",
			Help: "Total badge promotions by tier reached",
		}, []string{"badge"}),

		LedgerRepairs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifeline_donation_ledger_repairs_total",
			Help: "Total ledgers rewritten by reconciliation",
		}),

		RecordLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifeline_donation_record_duration_seconds",
			Help:    "Duration of recording a donation including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementRecorded counts one recorded donation.
func (m *Metrics) IncrementRecorded() {
	if m != nil {
		m.Recorded.Inc()
	}
}

// IncrementBadgePromotion counts one promotion into the given tier.
func (m *Metrics) IncrementBadgePromotion(badge string) {
	if m != nil {
		m.BadgePromotions.WithLabelValues(badge).Inc()
	}
}

// IncrementLedgerRepair counts one reconciliation that rewrote a ledger.
func (m *Metrics) IncrementLedgerRepair() {
	if m != nil {
		m.LedgerRepairs.Inc()
	}
}

// ObserveRecordLatency records the total record duration.
func (m *Metrics) ObserveRecordLatency(d time.Duration) {
	if m != nil {
		m.RecordLatency.Observe(d.Seconds())
	}
}
