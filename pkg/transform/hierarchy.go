package transform

import (
	"github.com/netgraph/netgraph/pkg/model"
)

// HierarchyConfig parameterizes the level-promotion heuristic. The
// attribute names and thresholds are configurable because they encode
// demo-oriented grouping rules; the defaults must stay exactly as
// shipped for compatibility.
type HierarchyConfig struct {
	DepartmentAttr    string
	LocationAttr      string
	PriorityAttr      string
	BudgetAttr        string
	TeamSizeAttr      string
	HighPriority      string
	BudgetThreshold   float64
	TeamSizeThreshold int
}

// DefaultHierarchyConfig returns the shipped promotion parameters
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		DepartmentAttr:    "department",
		LocationAttr:      "location",
		PriorityAttr:      "priority",
		BudgetAttr:        "budget",
		TeamSizeAttr:      "team_size",
		HighPriority:      "High",
		BudgetThreshold:   300000,
		TeamSizeThreshold: 30,
	}
}

// ApplyHierarchy assigns hierarchy levels as a default layout hint.
// Graphs whose nodes already carry non-uniform levels (the caller set
// them explicitly) pass through untouched, which also makes the
// assignment idempotent. Otherwise a four-tier promotion runs:
//
//	level 1: baseline for every node
//	level 2: department groups at least as large as the average group
//	level 3: location groups within a department, when more than half
//	         the group is high priority or the group exceeds half the
//	         average department size
//	level 4: the first third (in original order) of high-priority
//	         level-3 nodes with budget or team size over threshold
//
// The tiers are deliberately order-dependent.
func ApplyHierarchy(graph *model.GraphData, cfg HierarchyConfig) {
	if len(graph.Nodes) == 0 || hasExplicitLevels(graph) {
		return
	}

	for _, node := range graph.Nodes {
		node.Level = 1
	}

	departments := groupByAttribute(graph.Nodes, cfg.DepartmentAttr)
	if len(departments) == 0 {
		return
	}
	avgDeptSize := float64(len(graph.Nodes)) / float64(len(departments))

	for _, members := range departments {
		if float64(len(members)) >= avgDeptSize {
			for _, node := range members {
				node.Level = 2
			}
		}
	}

	for _, members := range departments {
		locations := groupByAttribute(members, cfg.LocationAttr)
		for _, group := range locations {
			if !allAtLeastLevel(group, 2) {
				continue
			}
			highCount := 0
			for _, node := range group {
				if attributeText(node, cfg.PriorityAttr) == cfg.HighPriority {
					highCount++
				}
			}
			promote := float64(highCount) > float64(len(group))/2 ||
				float64(len(group)) > avgDeptSize/2
			if promote {
				for _, node := range group {
					node.Level = 3
				}
			}
		}
	}

	// first third of high-priority level-3 nodes, original order
	candidates := make([]*model.Node, 0)
	for _, node := range graph.Nodes {
		if node.Level == 3 && attributeText(node, cfg.PriorityAttr) == cfg.HighPriority {
			candidates = append(candidates, node)
		}
	}
	for _, node := range candidates[:len(candidates)/3] {
		budget := attributeFloat(node, cfg.BudgetAttr, 0)
		teamSize := attributeInt(node, cfg.TeamSizeAttr, 1)
		if budget > cfg.BudgetThreshold || teamSize > cfg.TeamSizeThreshold {
			node.Level = 4
		}
	}
}

// hasExplicitLevels reports whether node levels are non-uniform,
// which means the caller assigned them.
func hasExplicitLevels(graph *model.GraphData) bool {
	if len(graph.Nodes) < 2 {
		return false
	}
	first := graph.Nodes[0].Level
	for _, node := range graph.Nodes[1:] {
		if node.Level != first {
			return true
		}
	}
	return false
}

// groupByAttribute buckets nodes by the text of one attribute,
// preserving each bucket's original node order. Nodes missing the
// attribute share the empty-string bucket.
func groupByAttribute(nodes []*model.Node, attr string) map[string][]*model.Node {
	groups := make(map[string][]*model.Node)
	for _, node := range nodes {
		key := attributeText(node, attr)
		groups[key] = append(groups[key], node)
	}
	return groups
}

func allAtLeastLevel(nodes []*model.Node, level int) bool {
	for _, node := range nodes {
		if node.Level < level {
			return false
		}
	}
	return true
}

func attributeText(node *model.Node, attr string) string {
	if v, ok := node.Attributes[attr]; ok {
		return v.Text()
	}
	return ""
}

func attributeFloat(node *model.Node, attr string, fallback float64) float64 {
	if v, ok := node.Attributes[attr]; ok {
		if f, ok := v.Numeric(); ok {
			return f
		}
	}
	return fallback
}

func attributeInt(node *model.Node, attr string, fallback int) int {
	if v, ok := node.Attributes[attr]; ok {
		if i, ok := toInt(v); ok {
			return i
		}
	}
	return fallback
}
