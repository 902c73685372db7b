package infrastructure

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements the MetricsCollector port on the default
// prometheus registry, which /metrics exposes.
type PrometheusMetrics struct {
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
	commands        *prometheus.CounterVec
	staleResults    *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

var (
	globalMetrics     *PrometheusMetrics
	globalMetricsOnce sync.Once
)

// NewPrometheusMetrics returns the process-wide collector, registering it on first use
func NewPrometheusMetrics() *PrometheusMetrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = &PrometheusMetrics{
			upstreamCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_upstream_requests_total",
					Help: "The total number of OpenWeatherMap requests",
				},
				[]string{"endpoint", "success"},
			),
			upstreamLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherdash_upstream_request_duration_seconds",
					Help:    "OpenWeatherMap request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"endpoint"},
			),
			rateLimited: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_upstream_rate_limited_total",
					Help: "Requests rejected by the local upstream rate limiter",
				},
				[]string{"endpoint"},
			),
			commands: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_commands_total",
					Help: "Dashboard commands handled, by outcome",
				},
				[]string{"command", "success"},
			),
			staleResults: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_stale_results_total",
					Help: "Fetch results discarded because a newer request was issued",
				},
				[]string{"command"},
			),
			activeSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "weatherdash_active_sessions",
					Help: "Number of sessions held by the server",
				},
			),
		}
	})
	return globalMetrics
}

func (m *PrometheusMetrics) RecordUpstreamCall(endpoint string, success bool, duration time.Duration) {
	m.upstreamCalls.WithLabelValues(endpoint, strconv.FormatBool(success)).Inc()
	m.upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRateLimited(endpoint string) {
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

func (m *PrometheusMetrics) RecordCommand(command string, success bool) {
	m.commands.WithLabelValues(command, strconv.FormatBool(success)).Inc()
}

func (m *PrometheusMetrics) RecordStaleResult(command string) {
	m.staleResults.WithLabelValues(command).Inc()
}

func (m *PrometheusMetrics) SetActiveSessions(count int) {
	m.activeSessions.Set(float64(count))
}
