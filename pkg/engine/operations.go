package engine

import (
	"time"

	"github.com/netgraph/netgraph/pkg/logging"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/validation"
)

// CreateNode validates the request and adds a node to the graph.
// A request without an id gets a fresh UUID. Returns a clone of the
// stored node.
func (e *Engine) CreateNode(graphID string, req *validation.NodeRequest) (*model.Node, error) {
	start := time.Now()
	if err := validation.ValidateNodeRequest(req); err != nil {
		e.metrics.RecordGraphOperation("create_node", "error", time.Since(start))
		b := model.NewError("CreateNode").Cause(err)
		if req != nil {
			b = b.Node(req.ID)
		}
		return nil, b.Build()
	}
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("create_node", "error", time.Since(start))
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	node := model.NewNode(req.ID, req.Name)
	if req.Level > 0 {
		node.Level = req.Level
	}
	for k, v := range req.Attributes {
		node.Attributes[k] = model.FromAny(v)
	}
	for k, v := range req.KPIs {
		node.KPIs[k] = model.FromAny(v)
	}
	for k, v := range req.Visual {
		node.Visual[k] = model.FromAny(v)
	}
	if req.Position != nil {
		node.Position = model.Position{X: req.Position.X, Y: req.Position.Y}
	}

	if h.data.GetNodeByID(node.ID) != nil {
		e.metrics.RecordGraphOperation("create_node", "error", time.Since(start))
		return nil, model.NewError("CreateNode").Node(node.ID).Cause(model.ErrDuplicateNode).Build()
	}

	h.data.AddNode(node)
	e.updateSizeLocked(id, h)
	e.metrics.RecordGraphOperation("create_node", "success", time.Since(start))
	e.logger.Info("node created", logging.GraphID(id), logging.NodeID(node.ID))
	return node.Clone(), nil
}

// GetNode returns a clone of a node
func (e *Engine) GetNode(graphID, nodeID string) (*model.Node, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	node := h.data.GetNodeByID(nodeID)
	if node == nil {
		return nil, model.NewError("GetNode").Node(nodeID).Cause(model.ErrNodeNotFound).Build()
	}
	return node.Clone(), nil
}

// UpdateNode applies a partial update to a node and returns a clone
// of the updated state.
func (e *Engine) UpdateNode(graphID, nodeID string, upd model.NodeUpdate) (*model.Node, error) {
	start := time.Now()
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("update_node", "error", time.Since(start))
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.data.UpdateNode(nodeID, upd) {
		e.metrics.RecordGraphOperation("update_node", "error", time.Since(start))
		return nil, model.NewError("UpdateNode").Node(nodeID).Cause(model.ErrNodeNotFound).Build()
	}
	e.metrics.RecordGraphOperation("update_node", "success", time.Since(start))
	e.logger.Info("node updated", logging.GraphID(id), logging.NodeID(nodeID))
	return h.data.GetNodeByID(nodeID).Clone(), nil
}

// DeleteNode removes a node and its connected edges
func (e *Engine) DeleteNode(graphID, nodeID string) error {
	start := time.Now()
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("delete_node", "error", time.Since(start))
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.data.RemoveNode(nodeID) {
		e.metrics.RecordGraphOperation("delete_node", "error", time.Since(start))
		return model.NewError("DeleteNode").Node(nodeID).Cause(model.ErrNodeNotFound).Build()
	}
	e.updateSizeLocked(id, h)
	e.metrics.RecordGraphOperation("delete_node", "success", time.Since(start))
	e.logger.Info("node deleted", logging.GraphID(id), logging.NodeID(nodeID))
	return nil
}

// CreateEdge validates the request, requires both endpoints to
// exist, and adds an edge. Returns a clone of the stored edge.
func (e *Engine) CreateEdge(graphID string, req *validation.EdgeRequest) (*model.Edge, error) {
	start := time.Now()
	if err := validation.ValidateEdgeRequest(req); err != nil {
		e.metrics.RecordGraphOperation("create_edge", "error", time.Since(start))
		b := model.NewError("CreateEdge").Cause(err)
		if req != nil {
			b = b.Edge(req.ID)
		}
		return nil, b.Build()
	}
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("create_edge", "error", time.Since(start))
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.data.GetNodeByID(req.Source) == nil {
		e.metrics.RecordGraphOperation("create_edge", "error", time.Since(start))
		return nil, model.NewError("CreateEdge").Node(req.Source).Context("source").Cause(model.ErrNodeNotFound).Build()
	}
	if h.data.GetNodeByID(req.Target) == nil {
		e.metrics.RecordGraphOperation("create_edge", "error", time.Since(start))
		return nil, model.NewError("CreateEdge").Node(req.Target).Context("target").Cause(model.ErrNodeNotFound).Build()
	}

	edge := model.NewEdge(req.Source, req.Target)
	if req.ID != "" {
		edge.ID = req.ID
	}
	if req.RelationshipType != "" {
		edge.RelationshipType = req.RelationshipType
	}
	if req.Weight != nil {
		edge.Weight = *req.Weight
	}
	if req.Directed != nil {
		edge.Directed = *req.Directed
	}
	for k, v := range req.Attributes {
		edge.Attributes[k] = model.FromAny(v)
	}
	for k, v := range req.Visual {
		edge.Visual[k] = model.FromAny(v)
	}

	if h.data.GetEdgeByID(edge.ID) != nil {
		e.metrics.RecordGraphOperation("create_edge", "error", time.Since(start))
		return nil, model.NewError("CreateEdge").Edge(edge.ID).Cause(model.ErrDuplicateEdge).Build()
	}

	h.data.AddEdge(edge)
	e.updateSizeLocked(id, h)
	e.metrics.RecordGraphOperation("create_edge", "success", time.Since(start))
	e.logger.Info("edge created", logging.GraphID(id), logging.EdgeID(edge.ID))
	return edge.Clone(), nil
}

// GetEdge returns a clone of an edge
func (e *Engine) GetEdge(graphID, edgeID string) (*model.Edge, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	edge := h.data.GetEdgeByID(edgeID)
	if edge == nil {
		return nil, model.NewError("GetEdge").Edge(edgeID).Cause(model.ErrEdgeNotFound).Build()
	}
	return edge.Clone(), nil
}

// UpdateEdge applies a partial update to an edge and returns a clone
// of the updated state.
func (e *Engine) UpdateEdge(graphID, edgeID string, upd model.EdgeUpdate) (*model.Edge, error) {
	start := time.Now()
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("update_edge", "error", time.Since(start))
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.data.UpdateEdge(edgeID, upd) {
		e.metrics.RecordGraphOperation("update_edge", "error", time.Since(start))
		return nil, model.NewError("UpdateEdge").Edge(edgeID).Cause(model.ErrEdgeNotFound).Build()
	}
	e.metrics.RecordGraphOperation("update_edge", "success", time.Since(start))
	e.logger.Info("edge updated", logging.GraphID(id), logging.EdgeID(edgeID))
	return h.data.GetEdgeByID(edgeID).Clone(), nil
}

// DeleteEdge removes an edge
func (e *Engine) DeleteEdge(graphID, edgeID string) error {
	start := time.Now()
	h, id, err := e.handle(graphID)
	if err != nil {
		e.metrics.RecordGraphOperation("delete_edge", "error", time.Since(start))
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.data.RemoveEdge(edgeID) {
		e.metrics.RecordGraphOperation("delete_edge", "error", time.Since(start))
		return model.NewError("DeleteEdge").Edge(edgeID).Cause(model.ErrEdgeNotFound).Build()
	}
	e.updateSizeLocked(id, h)
	e.metrics.RecordGraphOperation("delete_edge", "success", time.Since(start))
	e.logger.Info("edge deleted", logging.GraphID(id), logging.EdgeID(edgeID))
	return nil
}

// GetNeighbors returns the deduplicated neighbor ids of a node
func (e *Engine) GetNeighbors(graphID, nodeID, direction string) ([]string, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	dir, err := model.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.data.GetNodeByID(nodeID) == nil {
		return nil, model.NewError("GetNeighbors").Node(nodeID).Cause(model.ErrNodeNotFound).Build()
	}
	return h.data.GetNeighbors(nodeID, dir), nil
}

// QueryNodes returns clones of every node matching all filters
func (e *Engine) QueryNodes(graphID string, filters []model.Filter) ([]*model.Node, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	matches := h.data.QueryNodes(filters)
	out := make([]*model.Node, len(matches))
	for i, node := range matches {
		out[i] = node.Clone()
	}
	return out, nil
}

// QueryEdges returns clones of every edge matching all filters
func (e *Engine) QueryEdges(graphID string, filters []model.Filter) ([]*model.Edge, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	matches := h.data.QueryEdges(filters)
	out := make([]*model.Edge, len(matches))
	for i, edge := range matches {
		out[i] = edge.Clone()
	}
	return out, nil
}

// HistoryState reports the undo/redo cursor position after an
// operation, for UI button state.
type HistoryState struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// Undo reverses the most recent tracked mutation. Returns false with
// no error when there is nothing to undo.
func (e *Engine) Undo(graphID string) (bool, HistoryState, error) {
	h, id, err := e.handle(graphID)
	if err != nil {
		return false, HistoryState{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ok := h.data.Undo()
	state := HistoryState{CanUndo: h.data.CanUndo(), CanRedo: h.data.CanRedo()}
	if ok {
		e.updateSizeLocked(id, h)
		e.metrics.RecordUndo("success")
		e.logger.Info("undo applied", logging.GraphID(id))
	} else {
		e.metrics.RecordUndo("noop")
	}
	return ok, state, nil
}

// Redo re-applies the next action in the log. Returns false with no
// error when there is nothing to redo.
func (e *Engine) Redo(graphID string) (bool, HistoryState, error) {
	h, id, err := e.handle(graphID)
	if err != nil {
		return false, HistoryState{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ok := h.data.Redo()
	state := HistoryState{CanUndo: h.data.CanUndo(), CanRedo: h.data.CanRedo()}
	if ok {
		e.updateSizeLocked(id, h)
		e.metrics.RecordRedo("success")
		e.logger.Info("redo applied", logging.GraphID(id))
	} else {
		e.metrics.RecordRedo("noop")
	}
	return ok, state, nil
}

// CanUndo reports whether the graph has an action to undo
func (e *Engine) CanUndo(graphID string) (bool, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.CanUndo(), nil
}

// CanRedo reports whether the graph has an action to redo
func (e *Engine) CanRedo(graphID string) (bool, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.CanRedo(), nil
}

// updateSizeLocked refreshes the size gauges; the caller holds h.mu
func (e *Engine) updateSizeLocked(graphID string, h *graphHandle) {
	e.metrics.UpdateGraphSize(graphID, len(h.data.Nodes), len(h.data.Edges))
}
