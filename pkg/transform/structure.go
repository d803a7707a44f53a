package transform

import (
	"fmt"
	"sort"

	"github.com/netgraph/netgraph/pkg/model"
)

// ValidateStructure checks a graph for structural consistency:
// duplicate node ids, edges referencing missing nodes, self-loops and
// duplicate (source, target, relationship type) triples.
func ValidateStructure(graph *model.GraphData) (bool, []string) {
	errors := make([]string, 0)

	idCounts := make(map[string]int, len(graph.Nodes))
	for _, node := range graph.Nodes {
		idCounts[node.ID]++
	}
	duplicates := make([]string, 0)
	for id, count := range idCounts {
		if count > 1 {
			duplicates = append(duplicates, id)
		}
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		errors = append(errors, fmt.Sprintf("Duplicate node IDs found: %v", duplicates))
	}

	for _, edge := range graph.Edges {
		if _, ok := idCounts[edge.Source]; !ok {
			errors = append(errors, fmt.Sprintf(
				"Edge %s references non-existent source node: %s", edge.ID, edge.Source))
		}
		if _, ok := idCounts[edge.Target]; !ok {
			errors = append(errors, fmt.Sprintf(
				"Edge %s references non-existent target node: %s", edge.ID, edge.Target))
		}
	}

	for _, edge := range graph.Edges {
		if edge.Source == edge.Target {
			errors = append(errors, fmt.Sprintf("Self-loop detected in edge %s", edge.ID))
		}
	}

	tripleCounts := make(map[string]int, len(graph.Edges))
	for _, edge := range graph.Edges {
		tripleCounts[edgeTriple(edge)]++
	}
	duplicateEdges := make([]string, 0)
	for triple, count := range tripleCounts {
		if count > 1 {
			duplicateEdges = append(duplicateEdges, triple)
		}
	}
	if len(duplicateEdges) > 0 {
		sort.Strings(duplicateEdges)
		errors = append(errors, fmt.Sprintf("Duplicate edges found: %v", duplicateEdges))
	}

	return len(errors) == 0, errors
}

func edgeTriple(edge *model.Edge) string {
	return fmt.Sprintf("(%s, %s, %s)", edge.Source, edge.Target, edge.RelationshipType)
}
