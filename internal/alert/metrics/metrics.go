package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the alert module.
type Metrics struct {
	AlertsPublished   prometheus.Counter
	EmergencyContacts prometheus.Counter
	FeedFetchFailures prometheus.Counter
	FeedFetchDuration prometheus.Histogram
}

// New creates a new Metrics instance with all alert module metrics registered.
func New() *Metrics {
	return &Metrics{
		AlertsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rutasegura_alerts_published_total",
			Help: "Total number of alerts appended to the store",
		}),
		EmergencyContacts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rutasegura_emergency_contacts_total",
			Help: "Total number of emergency-contact escalations",
		}),
		FeedFetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rutasegura_feed_fetch_failures_total",
			Help: "Total number of feed fetches that failed against the store",
		}),
		FeedFetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rutasegura_feed_fetch_duration_seconds",
			Help:    "Duration of feed fetch operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementAlertsPublished records a successful alert append.
func (m *Metrics) IncrementAlertsPublished() {
	m.AlertsPublished.Inc()
}

// IncrementEmergencyContacts records an emergency-contact escalation.
func (m *Metrics) IncrementEmergencyContacts() {
	m.EmergencyContacts.Inc()
}

// IncrementFeedFetchFailures records a feed fetch that failed.
func (m *Metrics) IncrementFeedFetchFailures() {
	m.FeedFetchFailures.Inc()
}

// ObserveFeedFetch records the duration of a feed fetch.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveFeedFetch(start time.Time) {
	m.FeedFetchDuration.Observe(time.Since(start).Seconds())
}
