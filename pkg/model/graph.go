package model

import "time"

// DefaultHistoryLimit bounds the undo log to the most recent entries
const DefaultHistoryLimit = 100

// GraphData is an in-memory graph: insertion-ordered node and edge
// sequences, free-form metadata and a bounded undo/redo action log.
// Insertion order is meaningful (it drives default rendering order).
//
// GraphData is not safe for concurrent use; callers that share a
// graph across goroutines must serialize access (the engine package
// does this with one lock per graph).
type GraphData struct {
	Nodes     []*Node          `json:"nodes"`
	Edges     []*Edge          `json:"edges"`
	Metadata  map[string]Value `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`

	history      []actionEntry
	historyIndex int
	historyLimit int
}

// NewGraphData creates an empty graph with the default history bound
func NewGraphData() *GraphData {
	return &GraphData{
		Nodes:        make([]*Node, 0),
		Edges:        make([]*Edge, 0),
		Metadata:     make(map[string]Value),
		CreatedAt:    time.Now(),
		history:      make([]actionEntry, 0),
		historyIndex: -1,
		historyLimit: DefaultHistoryLimit,
	}
}

// SetHistoryLimit overrides the undo log bound. Limits below 1 are
// ignored.
func (g *GraphData) SetHistoryLimit(limit int) {
	if limit < 1 {
		return
	}
	g.historyLimit = limit
	if len(g.history) > limit {
		dropped := len(g.history) - limit
		g.history = append([]actionEntry(nil), g.history[dropped:]...)
		g.historyIndex -= dropped
		if g.historyIndex < -1 {
			g.historyIndex = -1
		}
	}
}

// AddNode appends a node to the graph and records the action.
// Uniqueness of ids is enforced at the engine boundary, not here.
func (g *GraphData) AddNode(node *Node) {
	g.record(actionEntry{action: actionAddNode, node: node})
	g.Nodes = append(g.Nodes, node)
}

// RemoveNode removes a node and every edge connected to it. Returns
// false if the node does not exist.
func (g *GraphData) RemoveNode(nodeID string) bool {
	node := g.GetNodeByID(nodeID)
	if node == nil {
		return false
	}
	removed := g.GetEdgesByNode(nodeID)
	g.record(actionEntry{action: actionRemoveNode, node: node, removedEdges: removed})
	g.removeNodeRaw(nodeID)
	return true
}

// UpdateNode applies an update to a node, capturing the pre-update
// state for undo. Returns false if the node does not exist.
func (g *GraphData) UpdateNode(nodeID string, upd NodeUpdate) bool {
	node := g.GetNodeByID(nodeID)
	if node == nil {
		return false
	}
	g.record(actionEntry{action: actionUpdateNode, node: node, prevNode: node.Clone()})
	upd.applyTo(node)
	return true
}

// AddEdge appends an edge to the graph and records the action.
// Referential integrity against node ids is checked by explicit
// structural validation, not at insertion time.
func (g *GraphData) AddEdge(edge *Edge) {
	g.record(actionEntry{action: actionAddEdge, edge: edge})
	g.Edges = append(g.Edges, edge)
}

// RemoveEdge removes an edge by id. Returns false if it does not exist.
func (g *GraphData) RemoveEdge(edgeID string) bool {
	edge := g.GetEdgeByID(edgeID)
	if edge == nil {
		return false
	}
	g.record(actionEntry{action: actionRemoveEdge, edge: edge})
	g.removeEdgeRaw(edgeID)
	return true
}

// UpdateEdge applies an update to an edge, capturing the pre-update
// state for undo. Returns false if the edge does not exist.
func (g *GraphData) UpdateEdge(edgeID string, upd EdgeUpdate) bool {
	edge := g.GetEdgeByID(edgeID)
	if edge == nil {
		return false
	}
	g.record(actionEntry{action: actionUpdateEdge, edge: edge, prevEdge: edge.Clone()})
	upd.applyTo(edge)
	return true
}

// Clone creates a deep copy of the graph's data. The action history
// is not copied; a clone starts with an empty undo log.
func (g *GraphData) Clone() *GraphData {
	clone := NewGraphData()
	clone.CreatedAt = g.CreatedAt
	for _, n := range g.Nodes {
		clone.Nodes = append(clone.Nodes, n.Clone())
	}
	for _, e := range g.Edges {
		clone.Edges = append(clone.Edges, e.Clone())
	}
	for k, v := range g.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

// raw mutation helpers shared by CRUD, undo and redo; these never
// touch the action log

func (g *GraphData) insertNodeRaw(node *Node) {
	g.Nodes = append(g.Nodes, node)
}

func (g *GraphData) removeNodeRaw(nodeID string) {
	for i, n := range g.Nodes {
		if n.ID == nodeID {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			break
		}
	}
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
}

func (g *GraphData) insertEdgeRaw(edge *Edge) {
	g.Edges = append(g.Edges, edge)
}

func (g *GraphData) removeEdgeRaw(edgeID string) {
	for i, e := range g.Edges {
		if e.ID == edgeID {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return
		}
	}
}

// NodeUpdate describes a partial update to a node. Nil scalar fields
// are left untouched; map fields are merged key-by-key.
type NodeUpdate struct {
	Name       *string
	Level      *int
	Position   *Position
	Attributes map[string]Value
	KPIs       map[string]Value
	Visual     map[string]Value
}

func (u NodeUpdate) applyTo(node *Node) {
	if u.Name != nil {
		node.Name = *u.Name
	}
	if u.Level != nil {
		node.Level = *u.Level
	}
	if u.Position != nil {
		node.Position = *u.Position
	}
	for k, v := range u.Attributes {
		node.Attributes[k] = v
	}
	for k, v := range u.KPIs {
		node.KPIs[k] = v
	}
	for k, v := range u.Visual {
		node.Visual[k] = v
	}
	node.UpdatedAt = time.Now()
}

// EdgeUpdate describes a partial update to an edge
type EdgeUpdate struct {
	RelationshipType *string
	Level            *int
	Weight           *float64
	Directed         *bool
	Attributes       map[string]Value
	KPIComponents    map[string]Value
	Visual           map[string]Value
}

func (u EdgeUpdate) applyTo(edge *Edge) {
	if u.RelationshipType != nil {
		edge.RelationshipType = *u.RelationshipType
	}
	if u.Level != nil {
		edge.Level = *u.Level
	}
	if u.Weight != nil {
		edge.Weight = *u.Weight
	}
	if u.Directed != nil {
		edge.Directed = *u.Directed
	}
	for k, v := range u.Attributes {
		edge.Attributes[k] = v
	}
	for k, v := range u.KPIComponents {
		edge.KPIComponents[k] = v
	}
	for k, v := range u.Visual {
		edge.Visual[k] = v
	}
}
