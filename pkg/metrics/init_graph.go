package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netgraph_graphs_total",
			Help: "Number of graphs managed by the engine",
		},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netgraph_graph_nodes_total",
			Help: "Total number of nodes per graph",
		},
		[]string{"graph"},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netgraph_graph_edges_total",
			Help: "Total number of edges per graph",
		},
		[]string{"graph"},
	)

	r.GraphOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_graph_operations_total",
			Help: "Total number of graph operations",
		},
		[]string{"operation", "status"},
	)

	r.GraphOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netgraph_graph_operation_duration_seconds",
			Help:    "Graph operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"},
	)

	r.UndoTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_undo_total",
			Help: "Total number of undo requests",
		},
		[]string{"status"},
	)

	r.RedoTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgraph_redo_total",
			Help: "Total number of redo requests",
		},
		[]string{"status"},
	)
}
