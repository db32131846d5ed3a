package graph

import (
	"math"
	"net/url"
	"strings"

	"github.com/ppiankov/claimtrace/internal/model"
)

// resolveOverlaps pushes same-cluster node boxes apart until no pair
// overlaps beyond the configured tolerance. Cluster processing order is
// fixed: evolution chain and claim first, then belief drivers, then
// sources, then extra links. Within a cluster the later node in slice
// order is the one that moves, which keeps the result deterministic.
func (b *Builder) resolveOverlaps(nodes []model.GraphNode) {
	clusters := [][]int{
		b.clusterIndexes(nodes, func(n model.GraphNode) bool {
			switch n.Kind {
			case model.NodeOrigin, model.NodeEvolution, model.NodePropagation, model.NodeClaim:
				return true
			default:
				return false
			}
		}),
		b.clusterIndexes(nodes, func(n model.GraphNode) bool {
			return n.Kind == model.NodeBeliefDriver
		}),
		b.clusterIndexes(nodes, func(n model.GraphNode) bool {
			return n.Kind == model.NodeSource && strings.HasPrefix(n.ID, sourcePrefix)
		}),
		b.clusterIndexes(nodes, func(n model.GraphNode) bool {
			return strings.HasPrefix(n.ID, extraPrefix)
		}),
	}

	for _, cluster := range clusters {
		b.resolveCluster(nodes, cluster)
	}
}

func (b *Builder) clusterIndexes(nodes []model.GraphNode, member func(model.GraphNode) bool) []int {
	var idx []int
	for i, n := range nodes {
		if member(n) {
			idx = append(idx, i)
		}
	}
	return idx
}

// resolveCluster shifts overlapping boxes vertically, a few passes at most.
// The chain's near-linear shapes settle in one pass; the cap guards the
// dense grids.
func (b *Builder) resolveCluster(nodes []model.GraphNode, idx []int) {
	w, h, tol := b.cfg.NodeWidth, b.cfg.NodeHeight, b.cfg.OverlapTolerance

	for pass := 0; pass < 8; pass++ {
		moved := false
		for a := 0; a < len(idx); a++ {
			for c := a + 1; c < len(idx); c++ {
				na := &nodes[idx[a]]
				nc := &nodes[idx[c]]

				dx := w - math.Abs(na.Position.X-nc.Position.X)
				dy := h - math.Abs(na.Position.Y-nc.Position.Y)
				if dx <= tol || dy <= tol {
					continue
				}

				// Push the later node down past the tolerance band
				shift := dy - tol
				if nc.Position.Y < na.Position.Y {
					shift = -shift
				}
				nc.Position.Y += shift
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

// hostLabel returns a short display label for a bare URL
func hostLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return truncate(rawURL, 40)
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}
