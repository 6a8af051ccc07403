package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Enrollments            *prometheus.CounterVec
	RegistrationsSubmitted prometheus.Counter
	CounterDriftRepaired   *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

// New creates metrics registered with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		Enrollments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "confreg_enrollments_total",
			Help: "Enrollment attempts by parent kind, operation and outcome",
		}, []string{"kind", "op", "outcome"}),
		RegistrationsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "confreg_registrations_submitted_total",
			Help: "Total number of conference registrations submitted",
		}),
		CounterDriftRepaired: f.NewCounterVec(prometheus.CounterOpts{
			Name: "confreg_counter_drift_repaired_total",
			Help: "Registration counters corrected by the reconciler",
		}, []string{"kind"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "confreg_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveEnrollment(kind, op, outcome string) {
	m.Enrollments.WithLabelValues(kind, op, outcome).Inc()
}

// IncrementRegistrationsSubmitted increments the submitted counter by 1
func (m *Metrics) IncrementRegistrationsSubmitted() {
	m.RegistrationsSubmitted.Inc()
}

func (m *Metrics) ObserveDriftRepaired(kind string) {
	m.CounterDriftRepaired.WithLabelValues(kind).Inc()
}
