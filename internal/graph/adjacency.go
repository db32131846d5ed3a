package graph

// AdjacencyEntry holds a node's neighbors and touching edges. Slices are
// ordered by edge insertion, so traversals that follow them are
// deterministic; each id appears at most once.
type AdjacencyEntry struct {
	In       []string // Neighbor ids with an edge into this node
	Out      []string // Neighbor ids this node has an edge to
	InEdges  []string // Edge ids terminating here
	OutEdges []string // Edge ids originating here
}

// Adjacency maps node id to its AdjacencyEntry
type Adjacency map[string]*AdjacencyEntry

// EdgeKey addresses an edge by its endpoints
type EdgeKey struct {
	Source string
	Target string
}

// EdgeIndex resolves (source, target) pairs to edge ids without scanning
type EdgeIndex map[EdgeKey]string

// BuildAdjacency derives the adjacency map and the edge-lookup index from
// a built graph. Edges referencing unknown nodes are skipped.
func BuildAdjacency(g *Graph) (Adjacency, EdgeIndex) {
	adj := make(Adjacency, len(g.Nodes))
	index := make(EdgeIndex, len(g.Edges))

	for _, n := range g.Nodes {
		adj[n.ID] = &AdjacencyEntry{}
	}

	for _, e := range g.Edges {
		src, srcOK := adj[e.Source]
		dst, dstOK := adj[e.Target]
		if !srcOK || !dstOK {
			continue
		}

		src.Out = appendUnique(src.Out, e.Target)
		src.OutEdges = appendUnique(src.OutEdges, e.ID)
		dst.In = appendUnique(dst.In, e.Source)
		dst.InEdges = appendUnique(dst.InEdges, e.ID)

		key := EdgeKey{Source: e.Source, Target: e.Target}
		if _, exists := index[key]; !exists {
			index[key] = e.ID
		}
	}

	return adj, index
}

// Between returns the id of the edge connecting the two nodes in either
// direction, preferring from->to
func (ix EdgeIndex) Between(from, to string) (string, bool) {
	if id, ok := ix[EdgeKey{Source: from, Target: to}]; ok {
		return id, true
	}
	if id, ok := ix[EdgeKey{Source: to, Target: from}]; ok {
		return id, true
	}
	return "", false
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}
