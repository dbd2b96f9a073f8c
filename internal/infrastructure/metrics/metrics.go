package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the reconciliation and provider Prometheus metrics.
// It satisfies usecase.Recorder and gateway.Observer.
type Metrics struct {
	// Reconciliation metrics
	ReconciliationSources *prometheus.CounterVec
	IdentityOutcomes      *prometheus.CounterVec

	// Provider metrics
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReconciliationSources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_reconciliation_source_total",
				Help: "Reconciliations by the source that produced the rows",
			},
			[]string{"source"},
		),
		IdentityOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_identity_resolution_total",
				Help: "Identity resolutions by matching strategy",
			},
			[]string{"outcome"},
		),

		ProviderRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_provider_requests_total",
				Help: "Payment provider calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitledger_provider_duration_seconds",
				Help:    "Payment provider call duration, retries included",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
	}
}

// ReconciliationSource counts which source answered a reconciliation.
func (m *Metrics) ReconciliationSource(source string) {
	m.ReconciliationSources.WithLabelValues(source).Inc()
}

// IdentityOutcome counts how a transaction's identity was resolved.
func (m *Metrics) IdentityOutcome(outcome string) {
	m.IdentityOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(operation, outcome string, duration time.Duration) {
	m.ProviderRequests.WithLabelValues(operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
