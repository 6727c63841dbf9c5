// Package metrics collects the Prometheus series exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "celebnet"

// Collector implements every recorder interface used by the modules and the gateway.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	follows      *prometheus.CounterVec
	aiFailures   *prometheus.CounterVec
	pdfRenders   *prometheus.CounterVec
	pdfDuration  prometheus.Histogram
	rateLimited  *prometheus.CounterVec
}

// NewCollector registers all series on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		follows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "follow_attempts_total",
			Help:      "Follow attempts by outcome.",
		}, []string{"outcome"}),
		aiFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_upstream_failures_total",
			Help:      "Failed Gemini calls by operation and failure kind.",
		}, []string{"operation", "kind"}),
		pdfRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_renders_total",
			Help:      "PDF export attempts by outcome.",
		}, []string{"outcome"}),
		pdfDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_render_duration_seconds",
			Help:      "Wall time spent in headless Chromium per export.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32},
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected with 429 by limiter.",
		}, []string{"limiter"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.follows,
		c.aiFailures,
		c.pdfRenders,
		c.pdfDuration,
		c.rateLimited,
	)

	return c
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (c *Collector) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordFollow(outcome string) {
	c.follows.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordAIUpstreamFailure(operation, kind string) {
	c.aiFailures.WithLabelValues(operation, kind).Inc()
}

func (c *Collector) RecordPDFRender(outcome string, d time.Duration) {
	c.pdfRenders.WithLabelValues(outcome).Inc()
	if d > 0 {
		c.pdfDuration.Observe(d.Seconds())
	}
}

func (c *Collector) RecordRateLimited(limiter string) {
	c.rateLimited.WithLabelValues(limiter).Inc()
}

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything. Used where metrics are not wired, mostly tests.
type Noop struct{}

func (Noop) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (Noop) RecordFollow(string)                                   {}
func (Noop) RecordAIUpstreamFailure(string, string)                {}
func (Noop) RecordPDFRender(string, time.Duration)                 {}
func (Noop) RecordRateLimited(string)                              {}
