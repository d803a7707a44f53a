// Package engine holds the long-lived named graphs and exposes the
// validated CRUD, query and undo/redo operations on them.
//
// The engine serializes access per graph: every operation takes the
// graph's lock for its full duration, so the data model's ordering
// and history invariants hold under concurrent callers. Entities
// returned to callers are clones; internal state never escapes.
package engine

import (
	"sync"

	"github.com/netgraph/netgraph/pkg/logging"
	"github.com/netgraph/netgraph/pkg/metrics"
	"github.com/netgraph/netgraph/pkg/model"
)

// DefaultGraphID names the graph that always exists
const DefaultGraphID = "default"

// graphHandle pairs a graph with the lock that serializes access to it
type graphHandle struct {
	mu   sync.Mutex
	data *model.GraphData
}

// Engine manages named in-memory graphs
type Engine struct {
	mu      sync.RWMutex
	graphs  map[string]*graphHandle
	history int
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewEngine creates an engine with the default graph present. A nil
// logger or registry falls back to the process-wide defaults.
func NewEngine(logger logging.Logger, reg *metrics.Registry) *Engine {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	e := &Engine{
		graphs:  make(map[string]*graphHandle),
		history: model.DefaultHistoryLimit,
		logger:  logger.With(logging.Component("engine")),
		metrics: reg,
	}
	e.graphs[DefaultGraphID] = &graphHandle{data: e.newGraphData()}
	e.metrics.GraphsTotal.Set(1)
	return e
}

// SetHistoryLimit sets the action-log bound applied to graphs
// created after this call.
func (e *Engine) SetHistoryLimit(limit int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = limit
}

func (e *Engine) newGraphData() *model.GraphData {
	g := model.NewGraphData()
	g.SetHistoryLimit(e.history)
	return g
}

// handle resolves a graph id, treating empty as the default graph
func (e *Engine) handle(graphID string) (*graphHandle, string, error) {
	if graphID == "" {
		graphID = DefaultGraphID
	}
	e.mu.RLock()
	h, ok := e.graphs[graphID]
	e.mu.RUnlock()
	if !ok {
		return nil, graphID, model.NewError("GetGraph").Graph(graphID).Cause(model.ErrGraphNotFound).Build()
	}
	return h, graphID, nil
}

// CreateGraph registers a new empty graph under the given id.
// Returns ErrDuplicateNode-style structured error if the id is taken.
func (e *Engine) CreateGraph(graphID string) error {
	if graphID == "" {
		return model.NewError("CreateGraph").Graph(graphID).Cause(model.ErrInvalidID).Build()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphs[graphID]; ok {
		return model.NewError("CreateGraph").Graph(graphID).Context("already exists").Cause(model.ErrInvalidID).Build()
	}
	e.graphs[graphID] = &graphHandle{data: e.newGraphData()}
	e.metrics.GraphsTotal.Set(float64(len(e.graphs)))
	e.logger.Info("graph created", logging.GraphID(graphID))
	return nil
}

// DropGraph removes a named graph. The default graph cannot be
// dropped, only cleared.
func (e *Engine) DropGraph(graphID string) error {
	if graphID == "" || graphID == DefaultGraphID {
		return model.NewError("DropGraph").Graph(graphID).Context("default graph cannot be dropped").Cause(model.ErrInvalidID).Build()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.graphs[graphID]; !ok {
		return model.NewError("DropGraph").Graph(graphID).Cause(model.ErrGraphNotFound).Build()
	}
	delete(e.graphs, graphID)
	e.metrics.GraphsTotal.Set(float64(len(e.graphs)))
	e.logger.Info("graph dropped", logging.GraphID(graphID))
	return nil
}

// GraphIDs returns the ids of all graphs
func (e *Engine) GraphIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.graphs))
	for id := range e.graphs {
		ids = append(ids, id)
	}
	return ids
}

// GetGraph returns a deep copy of a graph's current state. The copy
// carries no history.
func (e *Engine) GetGraph(graphID string) (*model.GraphData, error) {
	h, _, err := e.handle(graphID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data.Clone(), nil
}

// ClearGraph resets a graph to empty, discarding its history
func (e *Engine) ClearGraph(graphID string) error {
	h, id, err := e.handle(graphID)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.data = e.newGraphData()
	h.mu.Unlock()

	e.metrics.UpdateGraphSize(id, 0, 0)
	e.logger.Info("graph cleared", logging.GraphID(id))
	return nil
}

// LoadGraph replaces a graph's contents with an imported graph,
// typically the GraphData produced by the importer. The previous
// contents and history are discarded.
func (e *Engine) LoadGraph(graphID string, graph *model.GraphData) error {
	h, id, err := e.handle(graphID)
	if err != nil {
		return err
	}
	loaded := graph.Clone()
	loaded.SetHistoryLimit(e.history)

	h.mu.Lock()
	h.data = loaded
	nodes, edges := len(loaded.Nodes), len(loaded.Edges)
	h.mu.Unlock()

	e.metrics.UpdateGraphSize(id, nodes, edges)
	e.logger.Info("graph loaded",
		logging.GraphID(id),
		logging.Nodes(nodes),
		logging.Edges(edges))
	return nil
}

// MergeGraph adds an imported graph's nodes and edges into an
// existing graph through the tracked mutation methods, so the merge
// is undoable step by step. Nodes whose id already exists are
// skipped; their edges are still added.
func (e *Engine) MergeGraph(graphID string, graph *model.GraphData) (nodes, edges int, err error) {
	h, id, err := e.handle(graphID)
	if err != nil {
		return 0, 0, err
	}
	h.mu.Lock()
	for _, node := range graph.Nodes {
		if h.data.GetNodeByID(node.ID) != nil {
			continue
		}
		h.data.AddNode(node.Clone())
		nodes++
	}
	for _, edge := range graph.Edges {
		h.data.AddEdge(edge.Clone())
		edges++
	}
	totalNodes, totalEdges := len(h.data.Nodes), len(h.data.Edges)
	h.mu.Unlock()

	e.metrics.UpdateGraphSize(id, totalNodes, totalEdges)
	e.logger.Info("graph merged",
		logging.GraphID(id),
		logging.Nodes(nodes),
		logging.Edges(edges))
	return nodes, edges, nil
}
