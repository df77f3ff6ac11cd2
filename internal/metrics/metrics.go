// Package metrics holds the Prometheus collectors for the transcode
// endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webpproxy"

type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	fetchBytes        prometheus.Histogram
	transcodeDuration prometheus.Histogram
}

// New creates a Metrics instance on its own registry, so tests can build as
// many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of transcode requests by outcome",
			},
			[]string{"outcome"},
		),
		fetchBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_bytes",
				Help:      "Size of fetched upstream images",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		transcodeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transcode_duration_seconds",
				Help:      "Time spent decoding and re-encoding images",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(
		m.requests,
		m.fetchBytes,
		m.transcodeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Outcome records a finished request. Outcome is "ok" or an error kind.
func (m *Metrics) Outcome(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Fetched(n int) {
	m.fetchBytes.Observe(float64(n))
}

func (m *Metrics) Transcoded(d time.Duration) {
	m.transcodeDuration.Observe(d.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
