package graph

import "github.com/ppiankov/claimtrace/internal/model"

// Graph is the built node/edge diagram with an id lookup index
type Graph struct {
	Nodes []model.GraphNode
	Edges []model.GraphEdge

	byID map[string]int
}

// New wraps already-built nodes and edges with the id index. Used when
// rehydrating a memoized build; fresh graphs come from Builder.Build.
func New(nodes []model.GraphNode, edges []model.GraphEdge) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges, byID: make(map[string]int, len(nodes))}
	for i, n := range nodes {
		g.byID[n.ID] = i
	}
	return g
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (*model.GraphNode, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[idx], true
}

// ClaimID returns the id of the claim node, or "" when none exists
func (g *Graph) ClaimID() string {
	for _, n := range g.Nodes {
		if n.Kind == model.NodeClaim {
			return n.ID
		}
	}
	return ""
}

// Rect is an axis-aligned region in layout coordinates
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BoundsOf computes the padded bounding box of the named nodes, using the
// given node box size. Unknown ids are skipped; ok is false when none of
// the ids resolve.
func (g *Graph) BoundsOf(ids []string, nodeW, nodeH, pad float64) (Rect, bool) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, id := range ids {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		x, y := n.Position.X, n.Position.Y
		if first {
			minX, minY, maxX, maxY = x, y, x+nodeW, y+nodeH
			first = false
			continue
		}
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x+nodeW > maxX {
			maxX = x + nodeW
		}
		if y+nodeH > maxY {
			maxY = y + nodeH
		}
	}
	if first {
		return Rect{}, false
	}
	return Rect{
		X: minX - pad,
		Y: minY - pad,
		W: maxX - minX + 2*pad,
		H: maxY - minY + 2*pad,
	}, true
}

// AllIDs returns every node id in slice order
func (g *Graph) AllIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
