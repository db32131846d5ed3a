// Package highlight computes the node/edge emphasis sets for a focal node.
package highlight

import (
	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/model"
)

// Mode selects which connections to emphasize around the focal node
type Mode int

const (
	ModeSelf     Mode = iota // Only the node itself
	ModeIncoming             // Node plus incoming neighbors and edges
	ModeAll                  // Node plus all neighbors and edges (direct-interaction default)
)

// Result holds the id sets to emphasize
type Result struct {
	Nodes map[string]struct{}
	Edges map[string]struct{}
}

func emptyResult() Result {
	return Result{Nodes: make(map[string]struct{}), Edges: make(map[string]struct{})}
}

// Engine resolves highlight requests against one built graph
type Engine struct {
	graph    *graph.Graph
	adj      graph.Adjacency
	index    graph.EdgeIndex
	edgeByID map[string]model.GraphEdge
}

// NewEngine creates an engine over the graph and its derived adjacency
func NewEngine(g *graph.Graph, adj graph.Adjacency, index graph.EdgeIndex) *Engine {
	edges := make(map[string]model.GraphEdge, len(g.Edges))
	for _, e := range g.Edges {
		edges[e.ID] = e
	}
	return &Engine{graph: g, adj: adj, index: index, edgeByID: edges}
}

// Compute resolves the highlight sets for a focal node. Two overrides win
// over the requested mode: a claim node always resolves to itself alone,
// and an origin node traces the shortest path to the claim. An unknown
// focal id yields empty sets.
func (e *Engine) Compute(focalID string, mode Mode) Result {
	node, ok := e.graph.Node(focalID)
	if !ok {
		return emptyResult()
	}

	switch node.Kind {
	case model.NodeClaim:
		// The claim never shows its connections
		return e.selfOnly(focalID)
	case model.NodeOrigin:
		if path, found := e.tracePath(focalID); found {
			return path
		}
	}

	result := e.selfOnly(focalID)
	entry := e.adj[focalID]
	if entry == nil {
		return result
	}

	switch mode {
	case ModeSelf:
	case ModeIncoming:
		addAll(result.Nodes, entry.In)
		addAll(result.Edges, entry.InEdges)
	case ModeAll:
		addAll(result.Nodes, entry.In)
		addAll(result.Nodes, entry.Out)
		addAll(result.Edges, entry.InEdges)
		addAll(result.Edges, entry.OutEdges)
	}

	return result
}

func (e *Engine) selfOnly(id string) Result {
	result := emptyResult()
	result.Nodes[id] = struct{}{}
	return result
}

// tracePath runs a breadth-first search over outgoing edges from the
// origin to the claim node and returns exactly the nodes and edges on the
// first path found. BFS guarantees shortest by edge count; ties break by
// edge insertion order in the adjacency lists. Visited tracking is per
// node, so dense graphs cannot blow up the frontier.
func (e *Engine) tracePath(originID string) (Result, bool) {
	claimID := e.graph.ClaimID()
	if claimID == "" {
		return Result{}, false
	}

	type hop struct {
		prevNode string
		viaEdge  string
	}
	visited := map[string]hop{originID: {}}
	queue := []string{originID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == claimID {
			break
		}

		entry := e.adj[current]
		if entry == nil {
			continue
		}
		for _, edgeID := range entry.OutEdges {
			next := e.edgeByID[edgeID].Target
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = hop{prevNode: current, viaEdge: edgeID}
			queue = append(queue, next)
		}
	}

	if _, reached := visited[claimID]; !reached {
		return Result{}, false
	}

	result := emptyResult()
	for id := claimID; ; {
		result.Nodes[id] = struct{}{}
		step := visited[id]
		if step.prevNode == "" {
			break
		}
		result.Edges[step.viaEdge] = struct{}{}
		id = step.prevNode
	}
	return result, true
}

func addAll(set map[string]struct{}, ids []string) {
	for _, id := range ids {
		set[id] = struct{}{}
	}
}
