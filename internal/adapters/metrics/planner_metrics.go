package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetricsCollector handles habitat recomputation and catalog metrics
type PlannerMetricsCollector struct {
	recomputesTotal   *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	unknownModules    *prometheus.CounterVec
	importFailures    *prometheus.CounterVec
	catalogReloads    *prometheus.CounterVec
	catalogModules    prometheus.Gauge
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		recomputesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recomputes_total",
				Help:      "Total number of habitat recomputations by habitat type",
			},
			[]string{"habitat_type"},
		),

		// Recomputes fold at most a few dozen modules; buckets sit well under a millisecond
		recomputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recompute_duration_seconds",
				Help:      "Habitat recomputation duration distribution",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"habitat_type"},
		),

		unknownModules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unknown_modules_total",
				Help:      "Installed module names missing from the catalog during recomputation",
			},
			[]string{"habitat_type"},
		),

		importFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "import_failures_total",
				Help:      "Total number of rejected habitat imports by source",
			},
			[]string{"source"},
		),

		catalogReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog reload attempts by status",
			},
			[]string{"status"},
		),

		catalogModules: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_modules",
				Help:      "Number of modules in the active catalog",
			},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.recomputesTotal,
		c.recomputeDuration,
		c.unknownModules,
		c.importFailures,
		c.catalogReloads,
		c.catalogModules,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRecompute records one summary computation
func (c *PlannerMetricsCollector) RecordRecompute(habitatType string, duration float64, unknownModules int) {
	c.recomputesTotal.WithLabelValues(habitatType).Inc()
	c.recomputeDuration.WithLabelValues(habitatType).Observe(duration)
	if unknownModules > 0 {
		c.unknownModules.WithLabelValues(habitatType).Add(float64(unknownModules))
	}
}

// RecordImportFailure records a rejected import
func (c *PlannerMetricsCollector) RecordImportFailure(source string) {
	c.importFailures.WithLabelValues(source).Inc()
}

// RecordCatalogReload records a reload attempt and, on success, the new catalog size
func (c *PlannerMetricsCollector) RecordCatalogReload(success bool, modules int) {
	status := "success"
	if !success {
		status = "error"
	}
	c.catalogReloads.WithLabelValues(status).Inc()
	if success {
		c.catalogModules.Set(float64(modules))
	}
}

// SetCatalogModules records the size of the catalog loaded at startup
func (c *PlannerMetricsCollector) SetCatalogModules(modules int) {
	c.catalogModules.Set(float64(modules))
}
