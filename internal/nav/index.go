// Package nav derives the hierarchical list-view index from a built graph.
package nav

import (
	"math"
	"strings"

	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/model"
)

// Fixed section ids the tour scheduler and hosts key on
const (
	SectionEvolution = "evolution"
	SectionBeliefs   = "beliefs"
	SectionSources   = "sources"

	SubsectionOrigin = "evolution-origin"
	SubsectionSteps  = "evolution-steps"
	SubsectionClaim  = "evolution-claim"
)

// alertThreshold marks items whose credibility flags an alert
const alertThreshold = 40

// BuildIndex groups graph nodes into navigation sections. The evolution
// cluster becomes one section with its three fixed subsections; belief
// drivers and sources each become one flat section. Sections with no
// member nodes are omitted.
func BuildIndex(nodes []model.GraphNode) []model.NavigationSection {
	var originItems, stepItems, claimItems, beliefItems, sourceItems []model.NavigationItem

	for _, n := range nodes {
		switch n.Kind {
		case model.NodeOrigin:
			originItems = append(originItems, item(n))
		case model.NodeEvolution, model.NodePropagation:
			stepItems = append(stepItems, item(n))
		case model.NodeClaim:
			claimItems = append(claimItems, item(n))
		case model.NodeBeliefDriver:
			beliefItems = append(beliefItems, item(n))
		case model.NodeSource:
			// Extra-link leaves stay out of the browsable index
			if strings.HasPrefix(n.ID, "source-") {
				sourceItems = append(sourceItems, item(n))
			}
		}
	}

	var sections []model.NavigationSection

	var subsections []model.NavigationSection
	if len(originItems) > 0 {
		subsections = append(subsections, finalize(model.NavigationSection{
			ID:    SubsectionOrigin,
			Title: "Original Source",
			Color: "amber",
			Items: originItems,
		}))
	}
	if len(stepItems) > 0 {
		subsections = append(subsections, finalize(model.NavigationSection{
			ID:    SubsectionSteps,
			Title: "Evolution Steps",
			Color: "amber",
			Items: stepItems,
		}))
	}
	if len(claimItems) > 0 {
		subsections = append(subsections, finalize(model.NavigationSection{
			ID:    SubsectionClaim,
			Title: "Current Claim",
			Color: "amber",
			Items: claimItems,
		}))
	}
	if len(subsections) > 0 {
		sections = append(sections, finalize(model.NavigationSection{
			ID:          SectionEvolution,
			Title:       "Claim Evolution",
			Color:       "amber",
			Subsections: subsections,
		}))
	}

	if len(beliefItems) > 0 {
		sections = append(sections, finalize(model.NavigationSection{
			ID:    SectionBeliefs,
			Title: "Belief Drivers",
			Color: "purple",
			Items: beliefItems,
		}))
	}
	if len(sourceItems) > 0 {
		sections = append(sections, finalize(model.NavigationSection{
			ID:    SectionSources,
			Title: "Fact-Check Sources",
			Color: "emerald",
			Items: sourceItems,
		}))
	}

	return sections
}

// BuildFromGraph is a convenience wrapper over BuildIndex
func BuildFromGraph(g *graph.Graph) []model.NavigationSection {
	return BuildIndex(g.Nodes)
}

// item converts a graph node into a navigation entry
func item(n model.GraphNode) model.NavigationItem {
	it := model.NavigationItem{
		Label:  n.Label,
		Icon:   iconFor(n.Kind),
		NodeID: n.ID,
	}
	if n.Kind == model.NodeSource {
		cred := n.Credibility
		it.Credibility = &cred
	}
	return it
}

// iconFor maps every node variant to its list icon key
func iconFor(kind model.NodeKind) string {
	switch kind {
	case model.NodeOrigin:
		return "map-pin"
	case model.NodeEvolution:
		return "git-branch"
	case model.NodePropagation:
		return "share"
	case model.NodeClaim:
		return "flag"
	case model.NodeSource:
		return "shield-check"
	case model.NodeBeliefDriver:
		return "brain"
	default:
		return "circle"
	}
}

// finalize computes the aggregate stats for a section: item counts across
// subsections, mean credibility over the items that define one (rounded),
// and the low-credibility alert flag
func finalize(s model.NavigationSection) model.NavigationSection {
	items := s.Items
	for _, sub := range s.Subsections {
		items = append(items, sub.Items...)
	}

	s.TotalItems = len(items)

	sum, count := 0, 0
	for _, it := range items {
		if it.Credibility == nil {
			continue
		}
		sum += *it.Credibility
		count++
		if *it.Credibility < alertThreshold {
			s.HasAlerts = true
		}
	}
	if count > 0 {
		s.AvgCredibility = int(math.Round(float64(sum) / float64(count)))
	}

	return s
}
