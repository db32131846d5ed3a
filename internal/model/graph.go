package model

// NodeKind is the closed set of diagram node variants
type NodeKind string

const (
	NodeOrigin       NodeKind = "origin"       // Hypothesized earliest instance
	NodeEvolution    NodeKind = "evolution"    // One transformation of the claim
	NodePropagation  NodeKind = "propagation"  // One spread event across a channel
	NodeClaim        NodeKind = "claim"        // Terminal, current form of the claim
	NodeSource       NodeKind = "source"       // Fact-check source
	NodeBeliefDriver NodeKind = "beliefDriver" // Psychological driver
)

// Known reports whether k is one of the defined node variants
func (k NodeKind) Known() bool {
	switch k {
	case NodeOrigin, NodeEvolution, NodePropagation, NodeClaim, NodeSource, NodeBeliefDriver:
		return true
	default:
		return false
	}
}

// Position is a 2D layout coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphNode is one positioned diagram node. Payload fields are populated
// according to Kind; unused fields stay zero.
type GraphNode struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Position Position `json:"position"`

	Label       string      `json:"label"`
	Platform    string      `json:"platform,omitempty"`    // evolution/propagation
	Impact      string      `json:"impact,omitempty"`      // evolution
	Date        string      `json:"date,omitempty"`        // evolution/propagation
	Description string      `json:"description,omitempty"` // beliefDriver
	URL         string      `json:"url,omitempty"`         // source, extra link
	Credibility int         `json:"credibility,omitempty"` // source
	References  []Reference `json:"references,omitempty"`  // beliefDriver
	Verdict     Verdict     `json:"verdict,omitempty"`     // claim
}

// Anchor is a directional hint for where an edge attaches to a node
type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
)

// EdgeTier buckets an edge's visual weight and opacity
type EdgeTier string

const (
	EdgeTierPrimary   EdgeTier = "primary"   // Heavier stroke, full opacity
	EdgeTierSecondary EdgeTier = "secondary" // Lighter stroke, reduced opacity
)

// GraphEdge is one directed diagram edge
type GraphEdge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceAnchor Anchor   `json:"source_anchor,omitempty"`
	TargetAnchor Anchor   `json:"target_anchor,omitempty"`
	Tier         EdgeTier `json:"tier"`
	Animated     bool     `json:"animated,omitempty"`
	Label        string   `json:"label,omitempty"`
}

// DiagramPayload is the full output handed to the rendering surface
type DiagramPayload struct {
	Nodes       []GraphNode         `json:"nodes"`
	Edges       []GraphEdge         `json:"edges"`
	NavSections []NavigationSection `json:"navSections"`
}
