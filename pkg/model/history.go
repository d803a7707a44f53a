package model

// actionKind identifies a reversible mutation in the undo log
type actionKind uint8

const (
	actionAddNode actionKind = iota
	actionRemoveNode
	actionUpdateNode
	actionAddEdge
	actionRemoveEdge
	actionUpdateEdge
)

// actionEntry captures the pre-mutation state needed to reverse one
// mutation. For removals it also carries collaterally removed edges;
// for updates it carries a snapshot of the entity before the update.
type actionEntry struct {
	action       actionKind
	node         *Node
	edge         *Edge
	prevNode     *Node
	prevEdge     *Edge
	removedEdges []*Edge
}

// record appends an entry to the action log. Any redo tail beyond the
// cursor is discarded first (linear undo), then the log is clamped to
// the history limit with the cursor adjusted to the new end.
func (g *GraphData) record(entry actionEntry) {
	g.history = append(g.history[:g.historyIndex+1], entry)
	if len(g.history) > g.historyLimit {
		dropped := len(g.history) - g.historyLimit
		g.history = append([]actionEntry(nil), g.history[dropped:]...)
	}
	g.historyIndex = len(g.history) - 1
}

// CanUndo reports whether there is an action to undo
func (g *GraphData) CanUndo() bool {
	return g.historyIndex >= 0
}

// CanRedo reports whether there is an undone action to re-apply
func (g *GraphData) CanRedo() bool {
	return g.historyIndex < len(g.history)-1
}

// Undo reverses the action at the cursor and moves the cursor back.
// Returns false when there is nothing to undo.
func (g *GraphData) Undo() bool {
	if g.historyIndex < 0 {
		return false
	}
	entry := g.history[g.historyIndex]

	switch entry.action {
	case actionAddNode:
		g.removeNodeRaw(entry.node.ID)
	case actionRemoveNode:
		g.insertNodeRaw(entry.node)
		for _, e := range entry.removedEdges {
			g.insertEdgeRaw(e)
		}
	case actionUpdateNode:
		if node := g.GetNodeByID(entry.node.ID); node != nil {
			restoreNode(node, entry.prevNode)
		}
	case actionAddEdge:
		g.removeEdgeRaw(entry.edge.ID)
	case actionRemoveEdge:
		g.insertEdgeRaw(entry.edge)
	case actionUpdateEdge:
		if edge := g.GetEdgeByID(entry.edge.ID); edge != nil {
			restoreEdge(edge, entry.prevEdge)
		}
	}

	g.historyIndex--
	return true
}

// Redo re-applies the action after the cursor. Returns false when the
// cursor is already at the tail.
//
// Known limitation carried over from the original design: redoing an
// update only advances the cursor. The log captures the pre-update
// snapshot needed by Undo, not the post-update state, so there is
// nothing to re-apply.
func (g *GraphData) Redo() bool {
	if g.historyIndex >= len(g.history)-1 {
		return false
	}
	g.historyIndex++
	entry := g.history[g.historyIndex]

	switch entry.action {
	case actionAddNode:
		g.insertNodeRaw(entry.node)
	case actionRemoveNode:
		g.removeNodeRaw(entry.node.ID)
	case actionAddEdge:
		g.insertEdgeRaw(entry.edge)
	case actionRemoveEdge:
		g.removeEdgeRaw(entry.edge.ID)
	case actionUpdateNode, actionUpdateEdge:
		// cursor advance only, see above
	}

	return true
}

// HistoryLen returns the number of entries currently in the log
func (g *GraphData) HistoryLen() int {
	return len(g.history)
}

// restoreNode copies the mutable fields of a snapshot back onto a
// live node. The id is immutable and never restored.
func restoreNode(node, snapshot *Node) {
	node.Name = snapshot.Name
	node.Level = snapshot.Level
	node.Position = snapshot.Position
	node.Attributes = make(map[string]Value, len(snapshot.Attributes))
	for k, v := range snapshot.Attributes {
		node.Attributes[k] = v
	}
	node.KPIs = make(map[string]Value, len(snapshot.KPIs))
	for k, v := range snapshot.KPIs {
		node.KPIs[k] = v
	}
	node.Visual = make(map[string]Value, len(snapshot.Visual))
	for k, v := range snapshot.Visual {
		node.Visual[k] = v
	}
	node.UpdatedAt = snapshot.UpdatedAt
}

func restoreEdge(edge, snapshot *Edge) {
	edge.RelationshipType = snapshot.RelationshipType
	edge.Level = snapshot.Level
	edge.Weight = snapshot.Weight
	edge.Directed = snapshot.Directed
	edge.Attributes = make(map[string]Value, len(snapshot.Attributes))
	for k, v := range snapshot.Attributes {
		edge.Attributes[k] = v
	}
	edge.KPIComponents = make(map[string]Value, len(snapshot.KPIComponents))
	for k, v := range snapshot.KPIComponents {
		edge.KPIComponents[k] = v
	}
	edge.Visual = make(map[string]Value, len(snapshot.Visual))
	for k, v := range snapshot.Visual {
		edge.Visual[k] = v
	}
}
