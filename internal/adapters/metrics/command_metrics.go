package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// Outcomes a planner request can end in. Rejections are split by the error
// kind the HTTP layer maps to a 4xx.
const (
	OutcomeOK            = "ok"
	OutcomeValidation    = "validation"
	OutcomeUnknownModule = "unknown_module"
	OutcomeRejected      = "rejected"
	OutcomeInternal      = "internal"
)

// noHabitat labels requests that carry no habitat, such as catalog queries
const noHabitat = "none"

// CommandMetricsCollector times mediator requests by outcome and habitat type
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// Edits and recomputes stay in-process; anything over 10ms is an outlier
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Planner command and query duration by request and outcome",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"request", "outcome"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Planner commands and queries by request, outcome and habitat type",
			},
			[]string{"request", "outcome", "habitat_type"},
		),
	}
}

// Register registers the request metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *CommandMetricsCollector) RecordRequest(request, outcome, habitatType string, duration float64) {
	if habitatType == "" {
		habitatType = noHabitat
	}
	c.requestDuration.WithLabelValues(request, outcome).Observe(duration)
	c.requestsTotal.WithLabelValues(request, outcome, habitatType).Inc()
}

// Outcome classifies err into one of the Outcome labels
func Outcome(err error) string {
	var validation *shared.ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &validation):
		return OutcomeValidation
	case errors.Is(err, shared.ErrUnknownModule):
		return OutcomeUnknownModule
	case errors.Is(err, shared.ErrInvalidHabitat),
		errors.Is(err, shared.ErrCellNotEditable),
		errors.Is(err, shared.ErrModuleNotAllowed):
		return OutcomeRejected
	}
	return OutcomeInternal
}
