package transform

import (
	"fmt"
	"testing"

	"github.com/netgraph/netgraph/pkg/model"
)

func hierarchyNode(id, department, location, priority string, budget float64, teamSize int) *model.Node {
	node := model.NewNode(id, id)
	node.Attributes["department"] = model.StringValue(department)
	node.Attributes["location"] = model.StringValue(location)
	node.Attributes["priority"] = model.StringValue(priority)
	node.Attributes["budget"] = model.FloatValue(budget)
	node.Attributes["team_size"] = model.IntValue(int64(teamSize))
	return node
}

func TestApplyHierarchy_DepartmentPromotion(t *testing.T) {
	g := model.NewGraphData()
	// Eng has 3 of 4 nodes (above the average group size of 2),
	// Solo has 1 (below it)
	for i := 0; i < 3; i++ {
		g.AddNode(hierarchyNode(fmt.Sprintf("e%d", i), "Eng", "NY", "Low", 0, 1))
	}
	g.AddNode(hierarchyNode("s0", "Solo", "NY", "Low", 0, 1))

	ApplyHierarchy(g, DefaultHierarchyConfig())

	// the whole Eng/NY location group is larger than half the average
	// department size, so it reaches level 3
	for i := 0; i < 3; i++ {
		if got := g.GetNodeByID(fmt.Sprintf("e%d", i)).Level; got != 3 {
			t.Errorf("Eng node level = %d, want 3", got)
		}
	}
	if got := g.GetNodeByID("s0").Level; got != 1 {
		t.Errorf("Solo node level = %d, want 1", got)
	}
}

func TestApplyHierarchy_TopTierPromotion(t *testing.T) {
	g := model.NewGraphData()
	// six high-priority nodes in one department and location, all
	// over the budget threshold; the first third (two nodes) reach
	// level 4
	for i := 0; i < 6; i++ {
		g.AddNode(hierarchyNode(fmt.Sprintf("n%d", i), "Eng", "NY", "High", 500000, 50))
	}

	ApplyHierarchy(g, DefaultHierarchyConfig())

	for i := 0; i < 2; i++ {
		if got := g.GetNodeByID(fmt.Sprintf("n%d", i)).Level; got != 4 {
			t.Errorf("node n%d level = %d, want 4", i, got)
		}
	}
	for i := 2; i < 6; i++ {
		if got := g.GetNodeByID(fmt.Sprintf("n%d", i)).Level; got != 3 {
			t.Errorf("node n%d level = %d, want 3", i, got)
		}
	}
}

func TestApplyHierarchy_ThresholdsGateTopTier(t *testing.T) {
	g := model.NewGraphData()
	// high priority but under both thresholds: never level 4
	for i := 0; i < 6; i++ {
		g.AddNode(hierarchyNode(fmt.Sprintf("n%d", i), "Eng", "NY", "High", 100000, 10))
	}

	ApplyHierarchy(g, DefaultHierarchyConfig())

	for i := 0; i < 6; i++ {
		if got := g.GetNodeByID(fmt.Sprintf("n%d", i)).Level; got != 3 {
			t.Errorf("node n%d level = %d, want 3", i, got)
		}
	}
}

func TestApplyHierarchy_ExplicitLevelsPassThrough(t *testing.T) {
	g := model.NewGraphData()
	a := hierarchyNode("a", "Eng", "NY", "High", 500000, 50)
	a.Level = 7
	b := hierarchyNode("b", "Eng", "NY", "High", 500000, 50)
	b.Level = 2
	g.AddNode(a)
	g.AddNode(b)

	ApplyHierarchy(g, DefaultHierarchyConfig())

	if g.GetNodeByID("a").Level != 7 || g.GetNodeByID("b").Level != 2 {
		t.Error("non-uniform levels must pass through untouched")
	}
}

func TestApplyHierarchy_Idempotent(t *testing.T) {
	g := model.NewGraphData()
	for i := 0; i < 3; i++ {
		g.AddNode(hierarchyNode(fmt.Sprintf("e%d", i), "Eng", "NY", "High", 500000, 50))
	}
	g.AddNode(hierarchyNode("s0", "Solo", "LA", "Low", 0, 1))

	cfg := DefaultHierarchyConfig()
	ApplyHierarchy(g, cfg)

	levels := make(map[string]int)
	for _, node := range g.Nodes {
		levels[node.ID] = node.Level
	}

	ApplyHierarchy(g, cfg)
	for _, node := range g.Nodes {
		if node.Level != levels[node.ID] {
			t.Errorf("node %s level changed on second run: %d -> %d",
				node.ID, levels[node.ID], node.Level)
		}
	}
}

func TestApplyHierarchy_CustomConfig(t *testing.T) {
	g := model.NewGraphData()
	for i := 0; i < 3; i++ {
		node := model.NewNode(fmt.Sprintf("n%d", i), "N")
		node.Attributes["team"] = model.StringValue("Platform")
		node.Attributes["site"] = model.StringValue("Berlin")
		node.Attributes["urgency"] = model.StringValue("Critical")
		g.AddNode(node)
	}

	cfg := HierarchyConfig{
		DepartmentAttr:    "team",
		LocationAttr:      "site",
		PriorityAttr:      "urgency",
		BudgetAttr:        "budget",
		TeamSizeAttr:      "team_size",
		HighPriority:      "Critical",
		BudgetThreshold:   300000,
		TeamSizeThreshold: 30,
	}
	ApplyHierarchy(g, cfg)

	for _, node := range g.Nodes {
		if node.Level != 3 {
			t.Errorf("node %s level = %d, want 3 via custom attribute names", node.ID, node.Level)
		}
	}
}

func TestApplyHierarchy_EmptyGraph(t *testing.T) {
	g := model.NewGraphData()
	ApplyHierarchy(g, DefaultHierarchyConfig())
	// no panic, nothing to assert beyond that
}
