package assetserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the asset host's Prometheus collectors.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route
	BytesServed     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. Each
// server gets its own registry so tests can build many servers.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nowcast",
			Subsystem: "assets",
			Name:      "requests_total",
			Help:      "Asset host requests by route and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nowcast",
			Subsystem: "assets",
			Name:      "request_duration_seconds",
			Help:      "Asset host request latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		BytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nowcast",
			Subsystem: "assets",
			Name:      "bytes_served_total",
			Help:      "Response body bytes written for image requests.",
		}),
	}
	reg.MustRegister(m.Requests, m.RequestDuration, m.BytesServed)
	return m
}
