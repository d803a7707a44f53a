package model

import (
	"time"

	"github.com/google/uuid"
)

// Default visual properties assigned to freshly created entities
const (
	DefaultNodeSize  = 10.0
	DefaultNodeColor = "#3498db"
	DefaultNodeShape = "circle"
)

// Position is a 2D layout position
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a vertex in the graph
type Node struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Level      int              `json:"level"`
	KPIs       map[string]Value `json:"kpis"`
	Attributes map[string]Value `json:"attributes"`
	Position   Position         `json:"position"`
	Visual     map[string]Value `json:"visual_properties"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewNode creates a node with defaulted level, position and visual
// properties. An empty id is replaced with a fresh UUID.
func NewNode(id, name string) *Node {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	return &Node{
		ID:         id,
		Name:       name,
		Level:      1,
		KPIs:       make(map[string]Value),
		Attributes: make(map[string]Value),
		Visual:     defaultVisual(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func defaultVisual() map[string]Value {
	return map[string]Value{
		"size":  FloatValue(DefaultNodeSize),
		"color": StringValue(DefaultNodeColor),
		"shape": StringValue(DefaultNodeShape),
	}
}

// GetAttribute gets an attribute value
func (n *Node) GetAttribute(key string) (Value, bool) {
	val, ok := n.Attributes[key]
	return val, ok
}

// GetKPI gets a KPI value
func (n *Node) GetKPI(key string) (Value, bool) {
	val, ok := n.KPIs[key]
	return val, ok
}

// Clone creates a deep copy of a node
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:         n.ID,
		Name:       n.Name,
		Level:      n.Level,
		KPIs:       make(map[string]Value, len(n.KPIs)),
		Attributes: make(map[string]Value, len(n.Attributes)),
		Position:   n.Position,
		Visual:     make(map[string]Value, len(n.Visual)),
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
	for k, v := range n.KPIs {
		clone.KPIs[k] = v
	}
	for k, v := range n.Attributes {
		clone.Attributes[k] = v
	}
	for k, v := range n.Visual {
		clone.Visual[k] = v
	}
	return clone
}

// Edge represents a relationship between two nodes
type Edge struct {
	ID               string           `json:"id"`
	Source           string           `json:"source"`
	Target           string           `json:"target"`
	RelationshipType string           `json:"relationship_type"`
	Level            int              `json:"level"`
	Weight           float64          `json:"weight"`
	Directed         bool             `json:"directed"`
	KPIComponents    map[string]Value `json:"kpi_components"`
	Attributes       map[string]Value `json:"attributes"`
	Visual           map[string]Value `json:"visual_properties"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NewEdge creates a directed edge with a fresh UUID id, default
// relationship type and weight 1.0.
func NewEdge(source, target string) *Edge {
	return &Edge{
		ID:               uuid.NewString(),
		Source:           source,
		Target:           target,
		RelationshipType: "default",
		Level:            1,
		Weight:           1.0,
		Directed:         true,
		KPIComponents:    make(map[string]Value),
		Attributes:       make(map[string]Value),
		Visual:           defaultVisual(),
		CreatedAt:        time.Now(),
	}
}

// GetAttribute gets an attribute value
func (e *Edge) GetAttribute(key string) (Value, bool) {
	val, ok := e.Attributes[key]
	return val, ok
}

// Clone creates a deep copy of an edge
func (e *Edge) Clone() *Edge {
	clone := &Edge{
		ID:               e.ID,
		Source:           e.Source,
		Target:           e.Target,
		RelationshipType: e.RelationshipType,
		Level:            e.Level,
		Weight:           e.Weight,
		Directed:         e.Directed,
		KPIComponents:    make(map[string]Value, len(e.KPIComponents)),
		Attributes:       make(map[string]Value, len(e.Attributes)),
		Visual:           make(map[string]Value, len(e.Visual)),
		CreatedAt:        e.CreatedAt,
	}
	for k, v := range e.KPIComponents {
		clone.KPIComponents[k] = v
	}
	for k, v := range e.Attributes {
		clone.Attributes[k] = v
	}
	for k, v := range e.Visual {
		clone.Visual[k] = v
	}
	return clone
}
