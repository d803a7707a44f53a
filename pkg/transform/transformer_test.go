package transform

import (
	"errors"
	"testing"

	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/validation"
)

func stringRow(cells ...string) []model.Value {
	row := make([]model.Value, len(cells))
	for i, c := range cells {
		if c == "" {
			row[i] = model.NullValue()
		} else {
			row[i] = model.StringValue(c)
		}
	}
	return row
}

func TestToGraph_Nodes(t *testing.T) {
	d := dataset.New([]string{"id", "name", "dept", "score"})
	d.AppendRow(stringRow("1", "Alice", "Eng", "90"))
	d.AppendRow(stringRow("2", "Bob", "Sales", "75"))

	graph, err := ToGraph(d, map[string]string{
		"node_id":        "id",
		"node_name":      "name",
		"attribute_dept": "dept",
		"kpi_score":      "score",
	}, map[string]validation.TypeTag{"score": validation.TypeInteger})
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}

	if len(graph.Nodes) != 2 || len(graph.Edges) != 0 {
		t.Fatalf("Shape = %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))
	}

	alice := graph.GetNodeByID("1")
	if alice == nil || alice.Name != "Alice" {
		t.Fatal("node 1 missing or misnamed")
	}
	if v, ok := alice.GetAttribute("dept"); !ok || v.Text() != "Eng" {
		t.Errorf("dept = %v", v.Text())
	}
	if v, ok := alice.GetKPI("score"); !ok || v.Type != model.TypeInt {
		t.Errorf("score KPI = %v %v, want converted integer", v.Type, v.Text())
	}
}

func TestToGraph_SynthesizedNames(t *testing.T) {
	d := dataset.New([]string{"id"})
	d.AppendRow(stringRow("42"))

	graph, err := ToGraph(d, map[string]string{"node_id": "id"}, nil)
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}
	if graph.Nodes[0].Name != "Node_42" {
		t.Errorf("Name = %q, want Node_42", graph.Nodes[0].Name)
	}
}

func TestToGraph_NodeLevels(t *testing.T) {
	d := dataset.New([]string{"id", "lvl"})
	d.AppendRow(stringRow("a", "3"))
	d.AppendRow(stringRow("b", "junk"))

	graph, err := ToGraph(d, map[string]string{
		"node_id":    "id",
		"node_level": "lvl",
	}, nil)
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}
	if graph.GetNodeByID("a").Level != 3 {
		t.Errorf("level = %d, want 3", graph.GetNodeByID("a").Level)
	}
	if graph.GetNodeByID("b").Level != 1 {
		t.Errorf("unparseable level = %d, want default 1", graph.GetNodeByID("b").Level)
	}
}

func TestToGraph_Edges(t *testing.T) {
	d := dataset.New([]string{"from", "to", "rel", "w"})
	d.AppendRow(stringRow("a", "b", "manages", "2.5"))
	d.AppendRow(stringRow("b", "c", "", ""))

	graph, err := ToGraph(d, map[string]string{
		"edge_source": "from",
		"edge_target": "to",
		"edge_type":   "rel",
		"edge_weight": "w",
	}, nil)
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}

	if len(graph.Edges) != 2 {
		t.Fatalf("Edges = %d, want 2", len(graph.Edges))
	}
	// endpoints auto-created exactly once each
	if len(graph.Nodes) != 3 {
		t.Fatalf("Nodes = %d, want 3 auto-created", len(graph.Nodes))
	}

	first := graph.Edges[0]
	if first.RelationshipType != "manages" || first.Weight != 2.5 {
		t.Errorf("edge = %q %v", first.RelationshipType, first.Weight)
	}
	// null type and weight keep the defaults
	second := graph.Edges[1]
	if second.RelationshipType != "default" || second.Weight != 1.0 {
		t.Errorf("defaulted edge = %q %v", second.RelationshipType, second.Weight)
	}
}

func TestToGraph_EdgeAttributes(t *testing.T) {
	d := dataset.New([]string{"from", "to", "since"})
	d.AppendRow(stringRow("a", "b", "2020"))

	graph, err := ToGraph(d, map[string]string{
		"edge_source":     "from",
		"edge_target":     "to",
		"attribute_since": "since",
	}, nil)
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}
	if v, ok := graph.Edges[0].GetAttribute("since"); !ok || v.Text() != "2020" {
		t.Errorf("since = %v", v.Text())
	}
}

func TestToGraph_MissingRequiredFields(t *testing.T) {
	d := dataset.New([]string{"x"})
	d.AppendRow(stringRow("1"))

	if _, err := ToGraph(d, map[string]string{"node_name": "x"}, nil); !errors.Is(err, ErrMissingNodeID) {
		t.Errorf("node mapping error = %v, want ErrMissingNodeID", err)
	}
	if _, err := ToGraph(d, map[string]string{"edge_source": "x"}, nil); !errors.Is(err, ErrMissingEdgeFields) {
		t.Errorf("edge mapping error = %v, want ErrMissingEdgeFields", err)
	}
}

func TestToGraph_DoesNotMutateInput(t *testing.T) {
	d := dataset.New([]string{"id", "score"})
	d.AppendRow(stringRow("1", "90"))

	_, err := ToGraph(d, map[string]string{"node_id": "id"},
		map[string]validation.TypeTag{"score": validation.TypeInteger})
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}
	if v, _ := d.Cell(0, "score"); v.Type != model.TypeString {
		t.Error("type conversion leaked into the source dataset")
	}
}
