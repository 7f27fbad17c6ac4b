// Package metrics provides Prometheus metrics for the intake API.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telepatia"

type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	Messages *prometheus.CounterVec

	CollaboratorLatency *prometheus.HistogramVec
	CollaboratorErrors  *prometheus.CounterVec

	ExtractionCache *prometheus.CounterVec
}

// DefaultMetrics is the process-wide instance registered with the default registry.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Processed messages by type and outcome",
		}, []string{"type", "outcome"}),
		CollaboratorLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collaborator_duration_seconds",
			Help:      "Latency of calls to external collaborators",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"collaborator"}),
		CollaboratorErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_errors_total",
			Help:      "Failed calls to external collaborators",
		}, []string{"collaborator"}),
		ExtractionCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_cache_total",
			Help:      "Extraction cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordRequest(route, method string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route, method).Observe(seconds)
}

func (m *Metrics) RecordMessage(msgType, outcome string) {
	m.Messages.WithLabelValues(msgType, outcome).Inc()
}

func (m *Metrics) RecordCollaborator(name string, seconds float64, err error) {
	m.CollaboratorLatency.WithLabelValues(name).Observe(seconds)
	if err != nil {
		m.CollaboratorErrors.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.ExtractionCache.WithLabelValues("hit").Inc()
		return
	}
	m.ExtractionCache.WithLabelValues("miss").Inc()
}
