package stub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics are registered on a per-server registry so several servers can
// coexist in one process (tests).
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	replies  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	limited  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "analyst_stub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "status"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "analyst_stub",
			Name:      "chat_replies_total",
			Help:      "Chat replies by payload shape.",
		}, []string{"shape"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "analyst_stub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "analyst_stub",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.replies,
		m.duration,
		m.limited,
		collectors.NewGoCollector(),
	)

	return m
}
