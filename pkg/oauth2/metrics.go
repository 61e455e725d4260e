package oauth2

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Callback outcomes recorded by Metrics.
const (
	OutcomeOK            = "ok"
	OutcomeAccessDenied  = "access_denied"
	OutcomeStateMisMatch = "state_mismatch"
	OutcomeError         = "error"
)

// Metrics holds Prometheus metrics for the authorization code flow.
type Metrics struct {
	redirects       *prometheus.CounterVec
	callbacks       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance and registers it with the provided registerer.
// If registerer is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		redirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oauth2",
				Name:      "redirects_total",
				Help:      "Total number of authorize redirects issued",
			},
			[]string{"provider"},
		),
		callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oauth2",
				Name:      "callbacks_total",
				Help:      "Total number of provider callbacks by outcome",
			},
			[]string{"provider", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "oauth2",
				Name:      "provider_request_duration_seconds",
				Help:      "Latency of provider API requests",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"provider", "operation", "status"},
		),
	}

	registerer.MustRegister(m.redirects, m.callbacks, m.requestDuration)
	return m
}

func (m *Metrics) RecordRedirect(provider string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(provider).Inc()
}

func (m *Metrics) RecordCallback(provider, outcome string) {
	if m == nil {
		return
	}
	m.callbacks.WithLabelValues(provider, outcome).Inc()
}

// ObserveRequest records a provider API call. status is the HTTP status code,
// or 0 when the request never got a response.
func (m *Metrics) ObserveRequest(provider, operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestDuration.WithLabelValues(provider, operation, label).Observe(elapsed.Seconds())
}
