// Package metrics exposes prometheus instrumentation for gateway calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds instruments for the gateway client.
type Metrics struct {
	calls   *prometheus.CounterVec
	elapsed *prometheus.HistogramVec
}

// New registers instruments in the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrpay",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Outbound gateway calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		elapsed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qrpay",
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "Outbound gateway call duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	reg.MustRegister(m.calls, m.elapsed)

	return m
}

// ObserveGatewayCall records one outbound call.
func (m *Metrics) ObserveGatewayCall(endpoint string, outcome string, elapsed time.Duration) {
	m.calls.WithLabelValues(endpoint, outcome).Inc()
	m.elapsed.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
