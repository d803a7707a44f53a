// Package metrics exposes Prometheus instrumentation for imports and
// graph engine operations.
package metrics

import (
	"runtime"
	"time"
)

// RecordImport records a completed import with its duration and row count
func (r *Registry) RecordImport(format, status string, duration time.Duration, rows int) {
	r.ImportsTotal.WithLabelValues(format, status).Inc()
	r.ImportDuration.WithLabelValues(format).Observe(duration.Seconds())
	r.ImportRowsProcessed.WithLabelValues(format).Observe(float64(rows))
}

// RecordImportIssues adds import validation error and warning counts
func (r *Registry) RecordImportIssues(errors, warnings int) {
	r.ImportErrorsTotal.Add(float64(errors))
	r.ImportWarningsTotal.Add(float64(warnings))
}

// RecordGraphOperation records a graph engine operation
func (r *Registry) RecordGraphOperation(operation, status string, duration time.Duration) {
	r.GraphOperationsTotal.WithLabelValues(operation, status).Inc()
	r.GraphOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateGraphSize sets the node and edge gauges for a graph
func (r *Registry) UpdateGraphSize(graphID string, nodes, edges int) {
	r.GraphNodesTotal.WithLabelValues(graphID).Set(float64(nodes))
	r.GraphEdgesTotal.WithLabelValues(graphID).Set(float64(edges))
}

// RecordUndo records an undo request. Status is "success" or "noop".
func (r *Registry) RecordUndo(status string) {
	r.UndoTotal.WithLabelValues(status).Inc()
}

// RecordRedo records a redo request. Status is "success" or "noop".
func (r *Registry) RecordRedo(status string) {
	r.RedoTotal.WithLabelValues(status).Inc()
}

// UpdateSystemMetrics refreshes the runtime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
