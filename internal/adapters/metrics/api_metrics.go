package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector handles HTTP and websocket request metrics
type APIMetricsCollector struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRateLimited     *prometheus.CounterVec
	wsSessions         prometheus.Gauge
	wsMessagesTotal    *prometheus.CounterVec
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		// Total API requests by method, endpoint, and status code
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests by method, endpoint, and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		// API request duration histogram
		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"method", "endpoint"},
		),

		apiRateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
			[]string{"endpoint"},
		),

		wsSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ws",
				Name:      "sessions",
				Help:      "Number of open live planning sessions",
			},
		),

		wsMessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ws",
				Name:      "messages_total",
				Help:      "Total number of session messages by action and status",
			},
			[]string{"action", "status"},
		),
	}
}

// Register registers all API metrics with the Prometheus registry
func (c *APIMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.apiRequestsTotal,
		c.apiRequestDuration,
		c.apiRateLimited,
		c.wsSessions,
		c.wsMessagesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordAPIRequest records an API request completion
func (c *APIMetricsCollector) RecordAPIRequest(
	method string,
	endpoint string,
	statusCode int,
	duration float64,
) {
	statusCodeStr := strconv.Itoa(statusCode)

	// Increment request counter
	c.apiRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()

	// Record request duration
	c.apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordRateLimited records a request rejected by the rate limiter
func (c *APIMetricsCollector) RecordRateLimited(endpoint string) {
	c.apiRateLimited.WithLabelValues(endpoint).Inc()
}

// SessionOpened increments the open session gauge
func (c *APIMetricsCollector) SessionOpened() {
	c.wsSessions.Inc()
}

// SessionClosed decrements the open session gauge
func (c *APIMetricsCollector) SessionClosed() {
	c.wsSessions.Dec()
}

// RecordSessionMessage records one handled session action
func (c *APIMetricsCollector) RecordSessionMessage(action string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.wsMessagesTotal.WithLabelValues(action, status).Inc()
}
