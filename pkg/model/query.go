package model

import "fmt"

// Direction selects which edges count when walking neighbors
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionAll      Direction = "all"
)

// ParseDirection validates a direction string, defaulting empty input
// to DirectionAll.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIncoming, DirectionOutgoing, DirectionAll:
		return Direction(s), nil
	case "":
		return DirectionAll, nil
	default:
		return "", fmt.Errorf("invalid direction %q (want incoming, outgoing or all)", s)
	}
}

// Filter is one exact-match query clause. The key is matched against
// built-in fields first, then against the attribute map; entities that
// carry the key in neither are excluded.
type Filter struct {
	Key   string
	Value Value
}

// GetNodeByID returns the node with the given id, or nil. Linear scan;
// node counts here are UI-sized, not database-sized.
func (g *GraphData) GetNodeByID(nodeID string) *Node {
	for _, n := range g.Nodes {
		if n.ID == nodeID {
			return n
		}
	}
	return nil
}

// GetEdgeByID returns the edge with the given id, or nil
func (g *GraphData) GetEdgeByID(edgeID string) *Edge {
	for _, e := range g.Edges {
		if e.ID == edgeID {
			return e
		}
	}
	return nil
}

// GetEdgesByNode returns every edge where the node is source or target
func (g *GraphData) GetEdgesByNode(nodeID string) []*Edge {
	edges := make([]*Edge, 0)
	for _, e := range g.Edges {
		if e.Source == nodeID || e.Target == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}

// GetNeighbors returns the deduplicated ids of nodes adjacent to the
// given node in the requested direction.
func (g *GraphData) GetNeighbors(nodeID string, direction Direction) []string {
	seen := make(map[string]bool)
	neighbors := make([]string, 0)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			neighbors = append(neighbors, id)
		}
	}

	for _, e := range g.Edges {
		switch direction {
		case DirectionOutgoing:
			if e.Source == nodeID {
				add(e.Target)
			}
		case DirectionIncoming:
			if e.Target == nodeID {
				add(e.Source)
			}
		default:
			if e.Source == nodeID {
				add(e.Target)
			}
			if e.Target == nodeID {
				add(e.Source)
			}
		}
	}
	return neighbors
}

// QueryNodes returns nodes matching every filter clause. A key that is
// neither a built-in field nor present in a node's attributes excludes
// that node.
func (g *GraphData) QueryNodes(filters []Filter) []*Node {
	matches := make([]*Node, 0)
	for _, n := range g.Nodes {
		if nodeMatches(n, filters) {
			matches = append(matches, n)
		}
	}
	return matches
}

// QueryEdges returns edges matching every filter clause, with the same
// unknown-key semantics as QueryNodes.
func (g *GraphData) QueryEdges(filters []Filter) []*Edge {
	matches := make([]*Edge, 0)
	for _, e := range g.Edges {
		if edgeMatches(e, filters) {
			matches = append(matches, e)
		}
	}
	return matches
}

func nodeMatches(n *Node, filters []Filter) bool {
	for _, f := range filters {
		switch f.Key {
		case "id":
			if n.ID != f.Value.Text() {
				return false
			}
		case "name":
			if n.Name != f.Value.Text() {
				return false
			}
		case "level":
			want, ok := f.Value.Numeric()
			if !ok || float64(n.Level) != want {
				return false
			}
		default:
			attr, ok := n.Attributes[f.Key]
			if !ok || !attr.Matches(f.Value) {
				return false
			}
		}
	}
	return true
}

func edgeMatches(e *Edge, filters []Filter) bool {
	for _, f := range filters {
		switch f.Key {
		case "id":
			if e.ID != f.Value.Text() {
				return false
			}
		case "source":
			if e.Source != f.Value.Text() {
				return false
			}
		case "target":
			if e.Target != f.Value.Text() {
				return false
			}
		case "relationship_type":
			if e.RelationshipType != f.Value.Text() {
				return false
			}
		case "level":
			want, ok := f.Value.Numeric()
			if !ok || float64(e.Level) != want {
				return false
			}
		case "weight":
			want, ok := f.Value.Numeric()
			if !ok || e.Weight != want {
				return false
			}
		case "directed":
			b, err := f.Value.AsBool()
			if err != nil || e.Directed != b {
				return false
			}
		default:
			attr, ok := e.Attributes[f.Key]
			if !ok || !attr.Matches(f.Value) {
				return false
			}
		}
	}
	return true
}
