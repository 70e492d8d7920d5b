package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio_mcp"

// Metrics holds the collectors of one server instance.
type Metrics struct {
	registry *prometheus.Registry

	invocations      *prometheus.CounterVec
	invocationTime   *prometheus.HistogramVec
	backendRequests  *prometheus.CounterVec
	backendDurations *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_invocations_total",
				Help:      "Total number of tool invocations by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		invocationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_duration_seconds",
				Help:      "Duration of tool invocations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		backendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_requests_total",
				Help:      "Total number of backend requests by method, path and outcome",
			},
			[]string{"method", "path", "outcome"},
		),
		backendDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Duration of backend requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	m.registry.MustRegister(
		m.invocations,
		m.invocationTime,
		m.backendRequests,
		m.backendDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveInvocation records a finished tool invocation.
func (m *Metrics) ObserveInvocation(tool, outcome string, elapsed time.Duration) {
	m.invocations.WithLabelValues(tool, outcome).Inc()
	m.invocationTime.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveRequest records a finished backend request.
func (m *Metrics) ObserveRequest(method, path, outcome string, elapsed time.Duration) {
	m.backendRequests.WithLabelValues(method, path, outcome).Inc()
	m.backendDurations.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Registry returns the Prometheus registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
