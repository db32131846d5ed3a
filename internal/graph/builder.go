package graph

import (
	"fmt"

	"github.com/ppiankov/claimtrace/internal/model"
)

// Well-known node id prefixes. Extra-link nodes share the source kind but
// keep a distinct id prefix so navigation and overlap resolution can treat
// them as their own cluster.
const (
	idOrigin      = "origin"
	idClaim       = "claim"
	sourcePrefix  = "source-"
	beliefPrefix  = "belief-"
	extraPrefix   = "link-"
	edgeChainFmt  = "edge-chain-%d"
	edgeClaimID   = "edge-claim"
	edgeBeliefFmt = "edge-belief-%d"
	edgeSourceFmt = "edge-source-%d"
)

func idEvolution(i int) string   { return fmt.Sprintf("evolution-%d", i) }
func idPropagation(i int) string { return fmt.Sprintf("propagation-%d", i) }
func idFirstSeen(i int) string   { return fmt.Sprintf("firstseen-%d", i) }

// Input carries everything the builder needs. Extraction output maps onto
// it directly; callers may also supply entities from upstream.
type Input struct {
	Tracing    model.OriginTracingData
	Drivers    []model.BeliefDriver
	Sources    []model.FactCheckSource
	Verdict    model.Verdict
	Content    string   // Current claim text
	ExtraLinks []string // All discovered links, already-known sources excluded later
}

// Builder converts extracted entities into a positioned diagram graph.
// Build is pure and deterministic given identical inputs.
type Builder struct {
	cfg model.LayoutConfig
}

// NewBuilder creates a builder with the given layout configuration
func NewBuilder(cfg model.LayoutConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build produces the node/edge graph. Any subset of the input may be empty;
// a claim node is always produced when content or origin material exists.
func (b *Builder) Build(in Input) *Graph {
	var nodes []model.GraphNode
	var edges []model.GraphEdge

	// Evolution chain, left of center: origin first, then merged steps
	var chainIDs []string

	entries := buildChainEntries(in.Tracing)
	chainLen := len(entries)
	if in.Tracing.HypothesizedOrigin != "" {
		chainLen++
	}

	pos := 0
	if in.Tracing.HypothesizedOrigin != "" {
		nodes = append(nodes, model.GraphNode{
			ID:       idOrigin,
			Kind:     model.NodeOrigin,
			Position: b.chainPosition(pos, chainLen),
			Label:    truncate(in.Tracing.HypothesizedOrigin, 80),
		})
		chainIDs = append(chainIDs, idOrigin)
		pos++
	}
	for _, entry := range entries {
		nodes = append(nodes, model.GraphNode{
			ID:       entry.id,
			Kind:     entry.kind,
			Position: b.chainPosition(pos, chainLen),
			Label:    entry.label,
			Platform: entry.platform,
			Impact:   entry.impact,
			Date:     entry.date,
			URL:      entry.url,
		})
		chainIDs = append(chainIDs, entry.id)
		pos++
	}

	// Claim node at the fixed center anchor, terminal to the chain
	hasClaim := in.Content != "" || !in.Tracing.IsEmpty()
	if hasClaim {
		label := truncate(in.Content, 100)
		if label == "" {
			label = "Current claim"
		}
		nodes = append(nodes, model.GraphNode{
			ID:       idClaim,
			Kind:     model.NodeClaim,
			Position: model.Position{X: b.cfg.ClaimX, Y: b.cfg.ClaimY},
			Label:    label,
			Verdict:  in.Verdict,
		})
	}

	// Chain edges: consecutive links, the first two animated and labeled
	for i := 0; i+1 < len(chainIDs); i++ {
		edge := model.GraphEdge{
			ID:           fmt.Sprintf(edgeChainFmt, i),
			Source:       chainIDs[i],
			Target:       chainIDs[i+1],
			SourceAnchor: model.AnchorRight,
			TargetAnchor: model.AnchorLeft,
			Tier:         model.EdgeTierSecondary,
		}
		if i < 2 {
			edge.Animated = true
			edge.Label = chainEdgeLabel(nodes, chainIDs[i+1])
		}
		edges = append(edges, edge)
	}
	if hasClaim && len(chainIDs) > 0 {
		edges = append(edges, model.GraphEdge{
			ID:           edgeClaimID,
			Source:       chainIDs[len(chainIDs)-1],
			Target:       idClaim,
			SourceAnchor: model.AnchorRight,
			TargetAnchor: model.AnchorLeft,
			Tier:         model.EdgeTierPrimary,
			Animated:     true,
			Label:        "becomes current claim",
		})
	}

	// Belief drivers in a grid above, every driver wired into the claim
	for i, driver := range in.Drivers {
		id := fmt.Sprintf("%s%d", beliefPrefix, i)
		nodes = append(nodes, model.GraphNode{
			ID:          id,
			Kind:        model.NodeBeliefDriver,
			Position:    b.driverPosition(i),
			Label:       driver.Name,
			Description: driver.Description,
			References:  driver.References,
		})
		if hasClaim {
			tier := model.EdgeTierSecondary
			if i < 2 {
				tier = model.EdgeTierPrimary
			}
			edges = append(edges, model.GraphEdge{
				ID:           fmt.Sprintf(edgeBeliefFmt, i),
				Source:       id,
				Target:       idClaim,
				SourceAnchor: model.AnchorBottom,
				TargetAnchor: model.AnchorTop,
				Tier:         tier,
			})
		}
	}

	// Sources in a grid below, every source wired from the claim
	knownURLs := make(map[string]bool, len(in.Sources))
	for i, source := range in.Sources {
		id := fmt.Sprintf("%s%d", sourcePrefix, i)
		knownURLs[source.URL] = true
		nodes = append(nodes, model.GraphNode{
			ID:          id,
			Kind:        model.NodeSource,
			Position:    b.sourcePosition(i),
			Label:       sourceLabel(source),
			URL:         source.URL,
			Credibility: model.ClampCredibility(source.Credibility),
		})
		if hasClaim {
			tier := model.EdgeTierSecondary
			if model.ClampCredibility(source.Credibility) >= 80 {
				tier = model.EdgeTierPrimary
			}
			edges = append(edges, model.GraphEdge{
				ID:           fmt.Sprintf(edgeSourceFmt, i),
				Source:       idClaim,
				Target:       id,
				SourceAnchor: model.AnchorBottom,
				TargetAnchor: model.AnchorTop,
				Tier:         tier,
			})
		}
	}

	// Extra links: informational leaves below the sources, never connected
	extra := 0
	for _, link := range in.ExtraLinks {
		if knownURLs[link] || extra >= b.cfg.MaxExtraLinks {
			continue
		}
		knownURLs[link] = true
		nodes = append(nodes, model.GraphNode{
			ID:       fmt.Sprintf("%s%d", extraPrefix, extra),
			Kind:     model.NodeSource,
			Position: b.extraPosition(extra, len(in.Sources)),
			Label:    hostLabel(link),
			URL:      link,
		})
		extra++
	}

	b.resolveOverlaps(nodes)

	return New(nodes, edges)
}

// chainEdgeLabel derives an edge label from the target chain node
func chainEdgeLabel(nodes []model.GraphNode, targetID string) string {
	for _, n := range nodes {
		if n.ID != targetID {
			continue
		}
		if n.Platform != "" {
			return "spreads to " + truncate(n.Platform, 30)
		}
		break
	}
	return "mutates"
}

// sourceLabel prefers the title, then the outlet label, then the URL host
func sourceLabel(s model.FactCheckSource) string {
	if s.Title != "" {
		return truncate(s.Title, 60)
	}
	if s.Source != "" {
		return s.Source
	}
	return hostLabel(s.URL)
}
