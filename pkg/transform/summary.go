package transform

import (
	"strconv"

	"github.com/netgraph/netgraph/pkg/model"
)

// NumericStats summarizes an attribute whose values all parse as
// numbers.
type NumericStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// AttributeStats is either numeric or categorical, never both
type AttributeStats struct {
	Numeric    *NumericStats  `json:"numeric,omitempty"`
	Categories map[string]int `json:"categories,omitempty"`
}

// Summary describes a graph's composition: node counts per level,
// edge counts per relationship type, and per-attribute statistics
// covering attributes and KPIs alike.
type Summary struct {
	TotalNodes     int                       `json:"total_nodes"`
	TotalEdges     int                       `json:"total_edges"`
	NodeLevels     map[string]int            `json:"node_levels"`
	EdgeTypes      map[string]int            `json:"edge_types"`
	NodeAttributes map[string]AttributeStats `json:"node_attributes"`
	EdgeAttributes map[string]AttributeStats `json:"edge_attributes"`
}

// CreateSummary builds a summary of the graph structure. Level keys
// are strings so the summary serializes cleanly.
func CreateSummary(graph *model.GraphData) *Summary {
	summary := &Summary{
		TotalNodes:     len(graph.Nodes),
		TotalEdges:     len(graph.Edges),
		NodeLevels:     make(map[string]int),
		EdgeTypes:      make(map[string]int),
		NodeAttributes: make(map[string]AttributeStats),
		EdgeAttributes: make(map[string]AttributeStats),
	}

	for _, node := range graph.Nodes {
		summary.NodeLevels[strconv.Itoa(node.Level)]++
	}
	for _, edge := range graph.Edges {
		summary.EdgeTypes[edge.RelationshipType]++
	}

	nodeValues := make(map[string][]model.Value)
	for _, node := range graph.Nodes {
		for name, v := range node.Attributes {
			nodeValues[name] = append(nodeValues[name], v)
		}
		for name, v := range node.KPIs {
			nodeValues[name] = append(nodeValues[name], v)
		}
	}
	for name, values := range nodeValues {
		summary.NodeAttributes[name] = summarizeValues(values)
	}

	edgeValues := make(map[string][]model.Value)
	for _, edge := range graph.Edges {
		for name, v := range edge.Attributes {
			edgeValues[name] = append(edgeValues[name], v)
		}
		for name, v := range edge.KPIComponents {
			edgeValues[name] = append(edgeValues[name], v)
		}
	}
	for name, values := range edgeValues {
		summary.EdgeAttributes[name] = summarizeValues(values)
	}

	return summary
}

// summarizeValues produces numeric min/max/mean/count when every
// non-null value parses as a float, a categorical histogram
// otherwise.
func summarizeValues(values []model.Value) AttributeStats {
	numbers := make([]float64, 0, len(values))
	numeric := true
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		f, ok := v.Numeric()
		if !ok {
			numeric = false
			break
		}
		numbers = append(numbers, f)
	}

	if numeric && len(numbers) > 0 {
		stats := &NumericStats{Min: numbers[0], Max: numbers[0], Count: len(numbers)}
		var sum float64
		for _, f := range numbers {
			if f < stats.Min {
				stats.Min = f
			}
			if f > stats.Max {
				stats.Max = f
			}
			sum += f
		}
		stats.Mean = sum / float64(len(numbers))
		return AttributeStats{Numeric: stats}
	}

	categories := make(map[string]int)
	for _, v := range values {
		if !v.IsNull() {
			categories[v.Text()]++
		}
	}
	return AttributeStats{Categories: categories}
}
