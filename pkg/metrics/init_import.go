package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initImportMetrics() {
	r.ImportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_imports_total",
			Help: "Total number of data imports",
		},
		[]string{"format", "status"},
	)

	r.ImportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netgraph_import_duration_seconds",
			Help:    "Import duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"format"},
	)

	r.ImportRowsProcessed = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netgraph_import_rows_processed",
			Help:    "Number of rows processed per import",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"format"},
	)

	r.ImportErrorsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netgraph_import_errors_total",
			Help: "Total number of import validation errors",
		},
	)

	r.ImportWarningsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netgraph_import_warnings_total",
			Help: "Total number of import validation warnings",
		},
	)
}
