package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "habplanner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording planner events
// This interface is used by application code to record metrics
type PlannerMetricsRecorder interface {
	RecordRecompute(habitatType string, duration float64, unknownModules int)
	RecordImportFailure(source string)
	RecordCatalogReload(success bool, modules int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordRecompute records a habitat recomputation globally
func RecordRecompute(habitatType string, duration float64, unknownModules int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordRecompute(habitatType, duration, unknownModules)
	}
}

// RecordImportFailure records a rejected habitat import globally
func RecordImportFailure(source string) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordImportFailure(source)
	}
}

// RecordCatalogReload records a catalog reload attempt globally
func RecordCatalogReload(success bool, modules int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordCatalogReload(success, modules)
	}
}
