package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Import Metrics
	ImportsTotal        *prometheus.CounterVec
	ImportDuration      *prometheus.HistogramVec
	ImportRowsProcessed *prometheus.HistogramVec
	ImportErrorsTotal   prometheus.Counter
	ImportWarningsTotal prometheus.Counter

	// Graph Metrics
	GraphsTotal            prometheus.Gauge
	GraphNodesTotal        *prometheus.GaugeVec
	GraphEdgesTotal        *prometheus.GaugeVec
	GraphOperationsTotal   *prometheus.CounterVec
	GraphOperationDuration *prometheus.HistogramVec
	UndoTotal              *prometheus.CounterVec
	RedoTotal              *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initImportMetrics()
	r.initGraphMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
