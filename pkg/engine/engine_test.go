package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/netgraph/netgraph/pkg/logging"
	"github.com/netgraph/netgraph/pkg/metrics"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/validation"
)

func newTestEngine() *Engine {
	return NewEngine(logging.NewNopLogger(), metrics.NewRegistry())
}

func TestNewEngine_DefaultGraph(t *testing.T) {
	e := newTestEngine()

	graph, err := e.GetGraph("")
	if err != nil {
		t.Fatalf("GetGraph() error: %v", err)
	}
	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Error("Default graph should start empty")
	}

	// Explicit id resolves to the same graph
	if _, err := e.GetGraph(DefaultGraphID); err != nil {
		t.Errorf("GetGraph(default) error: %v", err)
	}
}

func TestGetGraph_NotFound(t *testing.T) {
	e := newTestEngine()

	_, err := e.GetGraph("missing")
	if !errors.Is(err, model.ErrGraphNotFound) {
		t.Errorf("Error = %v, want ErrGraphNotFound", err)
	}
}

func TestCreateAndDropGraph(t *testing.T) {
	e := newTestEngine()

	if err := e.CreateGraph("scenario"); err != nil {
		t.Fatalf("CreateGraph() error: %v", err)
	}
	if err := e.CreateGraph("scenario"); err == nil {
		t.Error("Expected error creating duplicate graph")
	}
	if _, err := e.GetGraph("scenario"); err != nil {
		t.Errorf("GetGraph(scenario) error: %v", err)
	}

	if err := e.DropGraph("scenario"); err != nil {
		t.Fatalf("DropGraph() error: %v", err)
	}
	if _, err := e.GetGraph("scenario"); err == nil {
		t.Error("Expected error after drop")
	}

	// The default graph cannot be dropped
	if err := e.DropGraph(DefaultGraphID); err == nil {
		t.Error("Expected error dropping default graph")
	}
}

func TestCreateNode(t *testing.T) {
	e := newTestEngine()

	node, err := e.CreateNode("", &validation.NodeRequest{
		ID:   "n1",
		Name: "First",
		Attributes: map[string]any{
			"department": "Engineering",
		},
	})
	if err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	if node.ID != "n1" {
		t.Errorf("ID = %q, want n1", node.ID)
	}
	if node.Name != "First" {
		t.Errorf("Name = %q, want First", node.Name)
	}
	if node.Level != 1 {
		t.Errorf("Level = %d, want 1", node.Level)
	}
	if dept, ok := node.GetAttribute("department"); !ok || dept.Text() != "Engineering" {
		t.Errorf("department = %v, want Engineering", dept)
	}
}

func TestCreateNode_GeneratedID(t *testing.T) {
	e := newTestEngine()

	node, err := e.CreateNode("", &validation.NodeRequest{Name: "anonymous"})
	if err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}
	if node.ID == "" {
		t.Error("Expected generated ID for empty id request")
	}
}

func TestCreateNode_Duplicate(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "n1"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}
	_, err := e.CreateNode("", &validation.NodeRequest{ID: "n1"})
	if !errors.Is(err, model.ErrDuplicateNode) {
		t.Errorf("Error = %v, want ErrDuplicateNode", err)
	}
}

func TestCreateNode_NilRequest(t *testing.T) {
	e := newTestEngine()

	_, err := e.CreateNode("", nil)
	if err == nil {
		t.Fatal("CreateNode(nil) should return an error")
	}
	if !strings.Contains(err.Error(), "cannot be nil") {
		t.Errorf("Error = %v, want nil-request validation error", err)
	}
}

func TestCreateEdge_NilRequest(t *testing.T) {
	e := newTestEngine()

	_, err := e.CreateEdge("", nil)
	if err == nil {
		t.Fatal("CreateEdge(nil) should return an error")
	}
	if !strings.Contains(err.Error(), "cannot be nil") {
		t.Errorf("Error = %v, want nil-request validation error", err)
	}
}

func TestCreateNode_ReturnsClone(t *testing.T) {
	e := newTestEngine()

	created, err := e.CreateNode("", &validation.NodeRequest{ID: "n1", Name: "before"})
	if err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	// Mutating the returned node must not affect engine state
	created.Name = "mutated"
	created.Attributes["injected"] = model.StringValue("x")

	stored, err := e.GetNode("", "n1")
	if err != nil {
		t.Fatalf("GetNode() error: %v", err)
	}
	if stored.Name != "before" {
		t.Errorf("Stored name = %q, want before", stored.Name)
	}
	if _, ok := stored.GetAttribute("injected"); ok {
		t.Error("Mutation of returned clone leaked into engine state")
	}
}

func TestUpdateNode(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "n1", Name: "old"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	name := "new"
	level := 3
	node, err := e.UpdateNode("", "n1", model.NodeUpdate{Name: &name, Level: &level})
	if err != nil {
		t.Fatalf("UpdateNode() error: %v", err)
	}
	if node.Name != "new" || node.Level != 3 {
		t.Errorf("Updated node = %q level %d, want new level 3", node.Name, node.Level)
	}

	_, err = e.UpdateNode("", "missing", model.NodeUpdate{Name: &name})
	if !errors.Is(err, model.ErrNodeNotFound) {
		t.Errorf("Error = %v, want ErrNodeNotFound", err)
	}
}

func TestDeleteNode_RemovesConnectedEdges(t *testing.T) {
	e := newTestEngine()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := e.CreateNode("", &validation.NodeRequest{ID: id}); err != nil {
			t.Fatalf("CreateNode(%s) error: %v", id, err)
		}
	}
	if _, err := e.CreateEdge("", &validation.EdgeRequest{ID: "e1", Source: "a", Target: "b"}); err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}
	if _, err := e.CreateEdge("", &validation.EdgeRequest{ID: "e2", Source: "b", Target: "c"}); err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}

	if err := e.DeleteNode("", "b"); err != nil {
		t.Fatalf("DeleteNode() error: %v", err)
	}

	graph, _ := e.GetGraph("")
	if len(graph.Nodes) != 2 {
		t.Errorf("Nodes = %d, want 2", len(graph.Nodes))
	}
	if len(graph.Edges) != 0 {
		t.Errorf("Edges = %d, want 0 (connected edges removed)", len(graph.Edges))
	}
}

func TestCreateEdge_RequiresEndpoints(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "a"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	_, err := e.CreateEdge("", &validation.EdgeRequest{Source: "a", Target: "ghost"})
	if !errors.Is(err, model.ErrNodeNotFound) {
		t.Errorf("Error = %v, want ErrNodeNotFound for missing target", err)
	}

	_, err = e.CreateEdge("", &validation.EdgeRequest{Source: "ghost", Target: "a"})
	if !errors.Is(err, model.ErrNodeNotFound) {
		t.Errorf("Error = %v, want ErrNodeNotFound for missing source", err)
	}
}

func TestCreateEdge_Defaults(t *testing.T) {
	e := newTestEngine()

	for _, id := range []string{"a", "b"} {
		if _, err := e.CreateNode("", &validation.NodeRequest{ID: id}); err != nil {
			t.Fatalf("CreateNode(%s) error: %v", id, err)
		}
	}

	edge, err := e.CreateEdge("", &validation.EdgeRequest{Source: "a", Target: "b"})
	if err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}

	if edge.ID == "" {
		t.Error("Expected generated edge ID")
	}
	if edge.RelationshipType != "default" {
		t.Errorf("RelationshipType = %q, want default", edge.RelationshipType)
	}
	if edge.Weight != 1.0 {
		t.Errorf("Weight = %v, want 1.0", edge.Weight)
	}
	if !edge.Directed {
		t.Error("Directed = false, want true")
	}
}

func TestUpdateAndDeleteEdge(t *testing.T) {
	e := newTestEngine()

	for _, id := range []string{"a", "b"} {
		if _, err := e.CreateNode("", &validation.NodeRequest{ID: id}); err != nil {
			t.Fatalf("CreateNode(%s) error: %v", id, err)
		}
	}
	if _, err := e.CreateEdge("", &validation.EdgeRequest{ID: "e1", Source: "a", Target: "b"}); err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}

	weight := 2.5
	edge, err := e.UpdateEdge("", "e1", model.EdgeUpdate{Weight: &weight})
	if err != nil {
		t.Fatalf("UpdateEdge() error: %v", err)
	}
	if edge.Weight != 2.5 {
		t.Errorf("Weight = %v, want 2.5", edge.Weight)
	}

	if err := e.DeleteEdge("", "e1"); err != nil {
		t.Fatalf("DeleteEdge() error: %v", err)
	}
	if err := e.DeleteEdge("", "e1"); !errors.Is(err, model.ErrEdgeNotFound) {
		t.Errorf("Error = %v, want ErrEdgeNotFound", err)
	}
}

func TestGetNeighbors(t *testing.T) {
	e := newTestEngine()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := e.CreateNode("", &validation.NodeRequest{ID: id}); err != nil {
			t.Fatalf("CreateNode(%s) error: %v", id, err)
		}
	}
	if _, err := e.CreateEdge("", &validation.EdgeRequest{Source: "a", Target: "b"}); err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}
	if _, err := e.CreateEdge("", &validation.EdgeRequest{Source: "c", Target: "a"}); err != nil {
		t.Fatalf("CreateEdge() error: %v", err)
	}

	outgoing, err := e.GetNeighbors("", "a", "outgoing")
	if err != nil {
		t.Fatalf("GetNeighbors() error: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0] != "b" {
		t.Errorf("Outgoing = %v, want [b]", outgoing)
	}

	incoming, err := e.GetNeighbors("", "a", "incoming")
	if err != nil {
		t.Fatalf("GetNeighbors() error: %v", err)
	}
	if len(incoming) != 1 || incoming[0] != "c" {
		t.Errorf("Incoming = %v, want [c]", incoming)
	}

	all, err := e.GetNeighbors("", "a", "")
	if err != nil {
		t.Fatalf("GetNeighbors() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All = %v, want 2 neighbors", all)
	}

	if _, err := e.GetNeighbors("", "a", "sideways"); err == nil {
		t.Error("Expected error for invalid direction")
	}
}

func TestQueryNodes(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{
		ID: "n1", Name: "Alice",
		Attributes: map[string]any{"department": "Engineering"},
	}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}
	if _, err := e.CreateNode("", &validation.NodeRequest{
		ID: "n2", Name: "Bob",
		Attributes: map[string]any{"department": "Sales"},
	}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	matches, err := e.QueryNodes("", []model.Filter{
		{Key: "department", Value: model.StringValue("Engineering")},
	})
	if err != nil {
		t.Fatalf("QueryNodes() error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "n1" {
		t.Errorf("Matches = %v, want [n1]", matches)
	}

	// Unknown filter key excludes everything
	none, err := e.QueryNodes("", []model.Filter{
		{Key: "nonexistent", Value: model.StringValue("x")},
	})
	if err != nil {
		t.Fatalf("QueryNodes() error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Matches = %v, want none for unknown key", none)
	}
}

func TestUndoRedo(t *testing.T) {
	e := newTestEngine()

	if ok, _, err := e.Undo(""); err != nil || ok {
		t.Errorf("Undo on empty history = %v, %v; want false, nil", ok, err)
	}

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "n1"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	canUndo, err := e.CanUndo("")
	if err != nil || !canUndo {
		t.Fatalf("CanUndo = %v, %v; want true, nil", canUndo, err)
	}

	ok, state, err := e.Undo("")
	if err != nil || !ok {
		t.Fatalf("Undo = %v, %v; want true, nil", ok, err)
	}
	if state.CanUndo {
		t.Error("CanUndo should be false after undoing the only action")
	}
	if !state.CanRedo {
		t.Error("CanRedo should be true after undo")
	}

	if _, err := e.GetNode("", "n1"); err == nil {
		t.Error("Node should be gone after undo")
	}

	ok, state, err = e.Redo("")
	if err != nil || !ok {
		t.Fatalf("Redo = %v, %v; want true, nil", ok, err)
	}
	if state.CanRedo {
		t.Error("CanRedo should be false at history tail")
	}

	if _, err := e.GetNode("", "n1"); err != nil {
		t.Errorf("Node should be back after redo: %v", err)
	}
}

func TestClearGraph(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "n1"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}
	if err := e.ClearGraph(""); err != nil {
		t.Fatalf("ClearGraph() error: %v", err)
	}

	graph, _ := e.GetGraph("")
	if len(graph.Nodes) != 0 {
		t.Errorf("Nodes = %d, want 0", len(graph.Nodes))
	}

	// History does not survive a clear
	canUndo, _ := e.CanUndo("")
	if canUndo {
		t.Error("CanUndo should be false after clear")
	}
}

func TestLoadGraph(t *testing.T) {
	e := newTestEngine()

	imported := model.NewGraphData()
	imported.AddNode(model.NewNode("a", "A"))
	imported.AddNode(model.NewNode("b", "B"))
	imported.AddEdge(model.NewEdge("a", "b"))

	if err := e.LoadGraph("", imported); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}

	graph, _ := e.GetGraph("")
	if len(graph.Nodes) != 2 || len(graph.Edges) != 1 {
		t.Errorf("Graph = %d nodes %d edges, want 2/1", len(graph.Nodes), len(graph.Edges))
	}

	// Loading clones: mutating the source must not affect the engine
	imported.AddNode(model.NewNode("c", "C"))
	graph, _ = e.GetGraph("")
	if len(graph.Nodes) != 2 {
		t.Error("Mutating source graph after load leaked into engine state")
	}
}

func TestMergeGraph(t *testing.T) {
	e := newTestEngine()

	if _, err := e.CreateNode("", &validation.NodeRequest{ID: "a", Name: "existing"}); err != nil {
		t.Fatalf("CreateNode() error: %v", err)
	}

	imported := model.NewGraphData()
	imported.AddNode(model.NewNode("a", "incoming duplicate"))
	imported.AddNode(model.NewNode("b", "B"))
	imported.AddEdge(model.NewEdge("a", "b"))

	nodes, edges, err := e.MergeGraph("", imported)
	if err != nil {
		t.Fatalf("MergeGraph() error: %v", err)
	}
	if nodes != 1 {
		t.Errorf("Merged nodes = %d, want 1 (duplicate skipped)", nodes)
	}
	if edges != 1 {
		t.Errorf("Merged edges = %d, want 1", edges)
	}

	// The existing node wins over the incoming duplicate
	node, _ := e.GetNode("", "a")
	if node.Name != "existing" {
		t.Errorf("Node a name = %q, want existing", node.Name)
	}

	// Merge is undoable
	ok, _, err := e.Undo("")
	if err != nil || !ok {
		t.Errorf("Undo after merge = %v, %v; want true, nil", ok, err)
	}
}

func TestConcurrentMutations_NoCrash(t *testing.T) {
	e := newTestEngine()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := string(rune('a'+worker)) + "-" + string(rune('0'+i%10))
				e.CreateNode("", &validation.NodeRequest{ID: id})
				e.GetGraph("")
				e.DeleteNode("", id)
				e.Undo("")
				e.Redo("")
			}
		}(g)
	}
	wg.Wait()

	// State is consistent enough to walk without panicking
	graph, err := e.GetGraph("")
	if err != nil {
		t.Fatalf("GetGraph() error: %v", err)
	}
	for _, edge := range graph.Edges {
		if edge.Source == "" || edge.Target == "" {
			t.Error("Edge with empty endpoint after concurrent mutations")
		}
	}
}
