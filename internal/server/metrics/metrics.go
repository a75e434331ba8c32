// Package metrics collects server metrics and exposes them together with a
// health probe over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what the gRPC layer reports into.
type Recorder interface {
	RecordRequest(method, code string, duration time.Duration)
	RecordRateLimited(method string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crossclip_grpc_requests_total",
			Help: "Unary RPCs handled, by method and status code.",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crossclip_grpc_request_duration_seconds",
			Help:    "Unary RPC latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crossclip_grpc_rate_limited_total",
			Help: "RPCs rejected by the per-user rate limiter.",
		}, []string{"method"}),
	}

	reg.MustRegister(c.requests, c.latency, c.rateLimited)

	return c
}

func (c *Collector) RecordRequest(method, code string, duration time.Duration) {
	c.requests.WithLabelValues(method, code).Inc()
	c.latency.WithLabelValues(method).Observe(duration.Seconds())
}

func (c *Collector) RecordRateLimited(method string) {
	c.rateLimited.WithLabelValues(method).Inc()
}

var _ Recorder = (*Collector)(nil)
