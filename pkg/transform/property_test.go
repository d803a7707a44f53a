package transform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/model"
)

// TestTransformInvariants verifies structural laws of the
// dataset-to-graph conversion with generated edge lists.
func TestTransformInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	edgeMapping := map[string]string{
		"edge_source": "from",
		"edge_target": "to",
	}

	// Every edge endpoint produced by an edge-shaped transform exists
	// in the node set, so structure validation never reports dangling
	// references.
	properties.Property("edge transform auto-creates every endpoint", prop.ForAll(
		func(pairs []int) bool {
			d := dataset.New([]string{"from", "to"})
			for i := 0; i+1 < len(pairs); i += 2 {
				d.AppendRow([]model.Value{
					model.StringValue(fmt.Sprintf("n%d", pairs[i]%10)),
					model.StringValue(fmt.Sprintf("n%d", pairs[i+1]%10)),
				})
			}

			graph, err := ToGraph(d, edgeMapping, nil)
			if err != nil {
				return false
			}

			ids := make(map[string]bool, len(graph.Nodes))
			for _, node := range graph.Nodes {
				ids[node.ID] = true
			}
			for _, edge := range graph.Edges {
				if !ids[edge.Source] || !ids[edge.Target] {
					return false
				}
			}

			_, errs := ValidateStructure(graph)
			for _, msg := range errs {
				if strings.Contains(msg, "non-existent") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	// Node-shaped transforms produce exactly one node per row
	properties.Property("node transform is row-preserving", prop.ForAll(
		func(count uint8) bool {
			d := dataset.New([]string{"id"})
			for i := 0; i < int(count); i++ {
				d.AppendRow([]model.Value{model.StringValue(fmt.Sprintf("n%d", i))})
			}
			graph, err := ToGraph(d, map[string]string{"node_id": "id"}, nil)
			if err != nil {
				return false
			}
			return len(graph.Nodes) == int(count) && len(graph.Edges) == 0
		},
		gen.UInt8(),
	))

	// Once a graph carries non-uniform levels, hierarchy assignment
	// is a fixed point: applying it again changes nothing.
	properties.Property("hierarchy assignment is idempotent", prop.ForAll(
		func(depts []int) bool {
			g := model.NewGraphData()
			for i, d := range depts {
				node := model.NewNode(fmt.Sprintf("n%d", i), "N")
				node.Attributes["department"] = model.StringValue(fmt.Sprintf("d%d", d%3))
				node.Attributes["location"] = model.StringValue("HQ")
				node.Attributes["priority"] = model.StringValue("High")
				node.Attributes["budget"] = model.FloatValue(500000)
				g.AddNode(node)
			}

			cfg := DefaultHierarchyConfig()
			ApplyHierarchy(g, cfg)
			first := levelsOf(g)
			ApplyHierarchy(g, cfg)
			second := levelsOf(g)

			for id, level := range first {
				if second[id] != level {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

func levelsOf(g *model.GraphData) map[string]int {
	levels := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		levels[node.ID] = node.Level
	}
	return levels
}
