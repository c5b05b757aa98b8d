package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "office_picker"

// Metrics holds the Prometheus counters and histograms for the selection funnel.
type Metrics struct {
	Loads        *prometheus.CounterVec   // labels: source={hierarchy,facilities}, outcome={success,error}
	LoadDuration *prometheus.HistogramVec // labels: source
	FastPath     *prometheus.CounterVec   // labels: result={hit,miss}

	Registrations *prometheus.CounterVec // labels: outcome={success,not_supported,permission_denied,config_missing,error}
	Commits       *prometheus.CounterVec // labels: outcome={handed_off,cancelled,ignored,failed}
	Bindings      *prometheus.CounterVec // labels: outcome={success,error,skipped}

	APIDuration *prometheus.HistogramVec // labels: endpoint
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Loads,
		m.LoadDuration,
		m.FastPath,
		m.Registrations,
		m.Commits,
		m.Bindings,
		m.APIDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Location and facility loads by source and outcome.",
		}, []string{"source", "outcome"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a single source fetch and decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		FastPath: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fast_path_total",
			Help:      "Startup checks for a remembered facility.",
		}, []string{"result"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_registrations_total",
			Help:      "Push token registration attempts by outcome.",
		}, []string{"outcome"}),
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Facility selection commits by outcome.",
		}, []string{"outcome"}),
		Bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_bindings_total",
			Help:      "Token-to-facility bindings sent to the notification backend.",
		}, []string{"outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Allplace API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
	}
}
