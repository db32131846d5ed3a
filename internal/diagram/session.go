// Package diagram owns one interactive diagram session: the memoized build
// pipeline plus all transient interaction state (expanded sections, active
// highlight, guided tour).
package diagram

import (
	"encoding/json"
	"sync"

	"github.com/ppiankov/claimtrace/internal/cache"
	"github.com/ppiankov/claimtrace/internal/extract"
	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/highlight"
	"github.com/ppiankov/claimtrace/internal/model"
	"github.com/ppiankov/claimtrace/internal/nav"
	"github.com/ppiankov/claimtrace/internal/tour"
)

// RenderFunc receives highlight updates for the rendering surface
type RenderFunc func(highlight.Result)

// Session is the controller instance scoped to one diagram. All mutable
// interaction state lives here; nothing is global.
type Session struct {
	cfg       model.Config
	extractor *extract.Extractor
	builder   *graph.Builder
	memo      cache.Cache
	host      tour.Host
	render    RenderFunc
	sched     *tour.Scheduler

	mu         sync.Mutex
	graph      *graph.Graph
	adj        graph.Adjacency
	edgeIndex  graph.EdgeIndex
	engine     *highlight.Engine
	sections   []model.NavigationSection
	expanded   map[string]bool
	active     string
	seqIDs     []string
	seqIndex   int
	autoToured bool
}

// NewSession creates a session bound to a host surface. render may be nil
// when the host polls state instead of subscribing.
func NewSession(cfg model.Config, host tour.Host, render RenderFunc) *Session {
	if render == nil {
		render = func(highlight.Result) {}
	}
	s := &Session{
		cfg:       cfg,
		extractor: extract.New(cfg.Credibility),
		builder:   graph.NewBuilder(cfg.Layout),
		host:      host,
		render:    render,
		expanded:  make(map[string]bool),
	}
	if cfg.Cache.Enabled {
		s.memo = cache.NewMemoryCache(cfg.Cache.TTL)
	}
	s.sched = tour.NewScheduler(cfg.Tour, host, s.onTourStep, s.onTourClear)
	return s
}

// LoadText extracts entities from raw analysis text and loads the result
func (s *Session) LoadText(rawText, content string, extraLinks []string) model.DiagramPayload {
	ex := s.extractor.Extract(rawText)
	return s.Load(graph.Input{
		Tracing:    ex.OriginTracing,
		Drivers:    ex.BeliefDrivers,
		Sources:    ex.Sources,
		Verdict:    ex.Verdict,
		Content:    content,
		ExtraLinks: extraLinks,
	})
}

// Load builds (or rehydrates) the graph and navigation index for the
// inputs and resets all transient state. The build itself is a pure
// function of the inputs, so identical inputs hit the memo cache.
func (s *Session) Load(in graph.Input) model.DiagramPayload {
	// A zero credibility is treated as unset and resolved from the domain.
	// The caller's slice is left untouched.
	if len(in.Sources) > 0 {
		sources := append([]model.FactCheckSource(nil), in.Sources...)
		for i := range sources {
			if sources[i].Credibility == 0 {
				sources[i].Credibility = s.extractor.CredibilityForURL(sources[i].URL)
			}
		}
		in.Sources = sources
	}

	payload, ok := s.cachedPayload(in)
	if !ok {
		g := s.builder.Build(in)
		payload = model.DiagramPayload{
			Nodes:       g.Nodes,
			Edges:       g.Edges,
			NavSections: nav.BuildIndex(g.Nodes),
		}
		s.storePayload(in, payload)
	}

	g := graph.New(payload.Nodes, payload.Edges)
	adj, edgeIndex := graph.BuildAdjacency(g)

	s.mu.Lock()
	s.graph = g
	s.adj = adj
	s.edgeIndex = edgeIndex
	s.engine = highlight.NewEngine(g, adj, edgeIndex)
	s.sections = payload.NavSections
	s.expanded = make(map[string]bool)
	s.active = ""
	s.seqIDs = nil
	s.seqIndex = 0
	s.autoToured = false
	s.mu.Unlock()

	s.sched.SetGraph(func(id string) (model.Position, bool) {
		n, ok := g.Node(id)
		if !ok {
			return model.Position{}, false
		}
		return n.Position, true
	})

	s.maybeAutoTour(payload)
	return payload
}

// Payload returns the current graph and navigation index
func (s *Session) Payload() model.DiagramPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return model.DiagramPayload{}
	}
	return model.DiagramPayload{
		Nodes:       s.graph.Nodes,
		Edges:       s.graph.Edges,
		NavSections: s.sections,
	}
}

// HandleSectionClick expands the section, fits its bounds, and starts a
// guided tour over its nodes from the beginning
func (s *Session) HandleSectionClick(sectionID string) {
	s.startSectionTour(sectionID, "", 0)
}

// HandleItemClick starts the section tour at the clicked item's position
func (s *Session) HandleItemClick(nodeID string) {
	s.mu.Lock()
	sectionID := ""
	for _, section := range s.sections {
		for _, id := range section.NodeIDs() {
			if id == nodeID {
				sectionID = section.ID
				break
			}
		}
		if sectionID != "" {
			break
		}
	}
	s.mu.Unlock()
	if sectionID == "" {
		return
	}
	s.startSectionTour(sectionID, nodeID, 0)
}

// HandleNodeClick cancels any tour and applies direct-interaction focus:
// the full connection highlight (subject to the claim and origin
// overrides) plus a camera center on the node.
func (s *Session) HandleNodeClick(nodeID string) {
	s.sched.Stop()

	s.mu.Lock()
	engine := s.engine
	g := s.graph
	s.mu.Unlock()
	if engine == nil {
		return
	}

	s.render(engine.Compute(nodeID, highlight.ModeAll))

	if n, ok := g.Node(nodeID); ok {
		s.host.CenterCamera(n.Position.X, n.Position.Y, tour.CameraOptions{
			Duration: s.cfg.Tour.CameraDuration,
			MinZoom:  s.cfg.Tour.MinZoom,
		})
	}
}

// ToggleSection flips a section's expanded state
func (s *Session) ToggleSection(sectionID string) {
	s.mu.Lock()
	s.expanded[sectionID] = !s.expanded[sectionID]
	s.mu.Unlock()
}

// Expanded reports whether a section is expanded
func (s *Session) Expanded(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[sectionID]
}

// ActiveSection returns the id of the section driving the current tour
func (s *Session) ActiveSection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// StopTour cancels the tour and clears highlight state. The last focused
// node id persists on the scheduler.
func (s *Session) StopTour() {
	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()
	s.sched.Stop()
}

// SetPlaying pauses or resumes the running tour
func (s *Session) SetPlaying(playing bool) {
	s.sched.SetPlaying(playing)
}

// TourState exposes the scheduler phase for hosts that poll
func (s *Session) TourState() tour.State {
	return s.sched.State()
}

// LastFocused returns the node the tour last centered on
func (s *Session) LastFocused() string {
	return s.sched.LastFocused()
}

// HoverEnter emphasizes a node's connections while no tour is playing.
// Used for both canvas nodes and list items.
func (s *Session) HoverEnter(nodeID string) {
	if s.sched.State() != tour.StateIdle {
		return
	}
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()
	if engine == nil {
		return
	}
	s.render(engine.Compute(nodeID, highlight.ModeAll))
}

// HoverLeave clears the hover emphasis while no tour is playing
func (s *Session) HoverLeave() {
	if s.sched.State() != tour.StateIdle {
		return
	}
	s.render(highlight.Result{Nodes: map[string]struct{}{}, Edges: map[string]struct{}{}})
}

// StartSequentialHighlight begins a host-stepped sequential highlight over
// the given ids, rendering the first prefix immediately
func (s *Session) StartSequentialHighlight(ids []string) {
	s.mu.Lock()
	s.seqIDs = append([]string(nil), ids...)
	s.seqIndex = 0
	engine := s.engine
	s.mu.Unlock()
	if engine == nil || len(ids) == 0 {
		return
	}
	s.render(engine.Sequential(ids, 0))
}

// AdvanceSequentialHighlight extends the highlighted prefix by one
func (s *Session) AdvanceSequentialHighlight() {
	s.mu.Lock()
	if len(s.seqIDs) == 0 {
		s.mu.Unlock()
		return
	}
	if s.seqIndex+1 < len(s.seqIDs) {
		s.seqIndex++
	}
	ids, index, engine := s.seqIDs, s.seqIndex, s.engine
	s.mu.Unlock()
	s.render(engine.Sequential(ids, index))
}

// StopSequentialHighlight clears the sequential highlight state
func (s *Session) StopSequentialHighlight() {
	s.mu.Lock()
	s.seqIDs = nil
	s.seqIndex = 0
	s.mu.Unlock()
	s.render(highlight.Result{Nodes: map[string]struct{}{}, Edges: map[string]struct{}{}})
}

// startSectionTour is the shared entry for section and item clicks
func (s *Session) startSectionTour(sectionID, startNodeID string, fallbackIndex int) {
	s.mu.Lock()
	var section *model.NavigationSection
	for i := range s.sections {
		if s.sections[i].ID == sectionID {
			section = &s.sections[i]
			break
		}
	}
	if section == nil || s.graph == nil {
		s.mu.Unlock()
		return
	}

	ids := section.NodeIDs()
	index := fallbackIndex
	if startNodeID != "" {
		for i, id := range ids {
			if id == startNodeID {
				index = i
				break
			}
		}
	}

	s.expanded[sectionID] = true
	s.active = sectionID

	layout := s.cfg.Layout
	region, ok := s.graph.BoundsOf(ids, layout.NodeWidth, layout.NodeHeight, s.cfg.Tour.FitPadding)
	full, _ := s.graph.BoundsOf(s.graph.AllIDs(), layout.NodeWidth, layout.NodeHeight, s.cfg.Tour.FitPadding)
	s.mu.Unlock()

	if !ok || len(ids) == 0 {
		return
	}

	s.sched.Begin(tour.Start{
		SectionID:  sectionID,
		IDs:        ids,
		Index:      index,
		Region:     region,
		FullRegion: full,
	})
}

// maybeAutoTour starts at most one automatic tour per graph instance,
// on first availability of data
func (s *Session) maybeAutoTour(payload model.DiagramPayload) {
	if !s.cfg.Tour.AutoStart || len(payload.NavSections) == 0 {
		return
	}
	s.mu.Lock()
	if s.autoToured {
		s.mu.Unlock()
		return
	}
	s.autoToured = true
	first := payload.NavSections[0].ID
	s.mu.Unlock()
	s.startSectionTour(first, "", 0)
}

// onTourStep renders the scheduler's cumulative sequential highlight
func (s *Session) onTourStep(ids []string, index int) {
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()
	if engine == nil {
		return
	}
	s.render(engine.Sequential(ids, index))
}

// onTourClear wipes highlight state when a tour stops
func (s *Session) onTourClear() {
	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()
	s.render(highlight.Result{Nodes: map[string]struct{}{}, Edges: map[string]struct{}{}})
}

// cachedPayload rehydrates a memoized build, if one exists
func (s *Session) cachedPayload(in graph.Input) (model.DiagramPayload, bool) {
	if s.memo == nil {
		return model.DiagramPayload{}, false
	}
	key, ok := fingerprintInput(in)
	if !ok {
		return model.DiagramPayload{}, false
	}
	data, found := s.memo.Get(key)
	if !found {
		return model.DiagramPayload{}, false
	}
	var payload model.DiagramPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.DiagramPayload{}, false
	}
	return payload, true
}

func (s *Session) storePayload(in graph.Input, payload model.DiagramPayload) {
	if s.memo == nil {
		return
	}
	key, ok := fingerprintInput(in)
	if !ok {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.memo.Set(key, data, 0)
}

func fingerprintInput(in graph.Input) (string, bool) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", false
	}
	return cache.Fingerprint(data), true
}
