package diagram

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/highlight"
	"github.com/ppiankov/claimtrace/internal/model"
	"github.com/ppiankov/claimtrace/internal/tour"
)

type fakeHost struct {
	mu      sync.Mutex
	centers []model.Position
	fits    int
}

func (h *fakeHost) CenterCamera(x, y float64, _ tour.CameraOptions) {
	h.mu.Lock()
	h.centers = append(h.centers, model.Position{X: x, Y: y})
	h.mu.Unlock()
}

func (h *fakeHost) FitToBounds(_ graph.Rect, _ tour.FitOptions) {
	h.mu.Lock()
	h.fits++
	h.mu.Unlock()
}

func (h *fakeHost) CurrentZoom() float64 { return 1 }

func (h *fakeHost) lastCenter() (model.Position, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.centers) == 0 {
		return model.Position{}, false
	}
	return h.centers[len(h.centers)-1], true
}

type renderLog struct {
	mu      sync.Mutex
	results []highlight.Result
}

func (r *renderLog) render(res highlight.Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *renderLog) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *renderLog) last() (highlight.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) == 0 {
		return highlight.Result{}, false
	}
	return r.results[len(r.results)-1], true
}

// quietConfig keeps timers from firing during a test
func quietConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Tour.AutoStart = false
	cfg.Tour.SettleDelay = time.Hour
	cfg.Tour.Interval = time.Hour
	return cfg
}

func sessionInput() graph.Input {
	return graph.Input{
		Tracing: model.OriginTracingData{
			HypothesizedOrigin: "Started on forum A",
			EvolutionSteps: []model.EvolutionStep{
				{Platform: "Site B", Transformation: "mutated"},
			},
		},
		Drivers: []model.BeliefDriver{{Name: "Confirmation Bias"}},
		Sources: []model.FactCheckSource{
			{URL: "https://factcheck.org/x", Credibility: 92},
			{URL: "https://someblog.example.com/y", Credibility: 40},
		},
		Verdict: model.VerdictFalse,
		Content: "Claim X",
	}
}

func TestSession_LoadBuildsPayload(t *testing.T) {
	s := NewSession(quietConfig(), &fakeHost{}, nil)
	payload := s.Load(sessionInput())

	if len(payload.Nodes) != 6 {
		t.Fatalf("Expected 6 nodes, got %d", len(payload.Nodes))
	}
	if len(payload.NavSections) != 3 {
		t.Fatalf("Expected 3 nav sections, got %d", len(payload.NavSections))
	}
	if got := s.Payload(); !reflect.DeepEqual(got, payload) {
		t.Error("Payload() should return the loaded payload")
	}
}

func TestSession_LoadMemoized(t *testing.T) {
	s := NewSession(quietConfig(), &fakeHost{}, nil)

	first := s.Load(sessionInput())
	second := s.Load(sessionInput())

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical inputs should produce identical payloads")
	}
	// Rehydrated graphs answer lookups like fresh ones
	host := &fakeHost{}
	log := &renderLog{}
	s2 := NewSession(quietConfig(), host, log.render)
	s2.Load(sessionInput())
	s2.Load(sessionInput()) // Memo hit
	s2.HandleNodeClick("source-0")
	if _, ok := host.lastCenter(); !ok {
		t.Error("Rehydrated graph should still resolve node positions")
	}
}

func TestSession_LoadResolvesMissingCredibility(t *testing.T) {
	s := NewSession(quietConfig(), &fakeHost{}, nil)
	in := sessionInput()
	in.Sources = []model.FactCheckSource{
		{URL: "https://factcheck.org/x", Title: "Debunked"},
	}
	payload := s.Load(in)

	for _, n := range payload.Nodes {
		if n.ID == "source-0" {
			if n.Credibility != 92 {
				t.Errorf("Credibility = %d, want 92 from the domain tier", n.Credibility)
			}
			return
		}
	}
	t.Fatal("Source node missing")
}

func TestSession_LoadResetsInteractionState(t *testing.T) {
	s := NewSession(quietConfig(), &fakeHost{}, nil)
	s.Load(sessionInput())

	s.ToggleSection("beliefs")
	if !s.Expanded("beliefs") {
		t.Fatal("ToggleSection should expand")
	}

	s.Load(sessionInput())
	if s.Expanded("beliefs") {
		t.Error("Load should reset expanded sections")
	}
	if s.ActiveSection() != "" {
		t.Error("Load should clear the active section")
	}
}

func TestSession_AutoTourStartsOnce(t *testing.T) {
	cfg := quietConfig()
	cfg.Tour.AutoStart = true
	host := &fakeHost{}
	s := NewSession(cfg, host, nil)
	s.Load(sessionInput())

	if s.TourState() == tour.StateIdle {
		t.Error("AutoStart should begin a tour on first data")
	}
	if s.ActiveSection() != "evolution" {
		t.Errorf("Auto tour section = %q, want evolution", s.ActiveSection())
	}
	if !s.Expanded("evolution") {
		t.Error("Auto tour should expand its section")
	}

	s.StopTour()
	if s.TourState() != tour.StateIdle || s.ActiveSection() != "" {
		t.Error("StopTour should return the session to idle")
	}
}

func TestSession_HandleNodeClick(t *testing.T) {
	host := &fakeHost{}
	log := &renderLog{}
	s := NewSession(quietConfig(), host, log.render)
	s.Load(sessionInput())

	s.HandleNodeClick("claim")

	res, ok := log.last()
	if !ok {
		t.Fatal("Node click should render a highlight")
	}
	if len(res.Nodes) != 1 {
		t.Errorf("Claim highlight nodes = %v, want self only", res.Nodes)
	}
	if _, ok := res.Nodes["claim"]; !ok {
		t.Error("Claim node missing from its own highlight")
	}
	if len(res.Edges) != 0 {
		t.Errorf("Claim highlight edges = %v, want none", res.Edges)
	}

	center, ok := host.lastCenter()
	if !ok {
		t.Fatal("Node click should center the camera")
	}
	if center.X != 880 || center.Y != 400 {
		t.Errorf("Camera centered at (%v, %v), want the claim anchor", center.X, center.Y)
	}
}

func TestSession_HandleSectionClick(t *testing.T) {
	host := &fakeHost{}
	s := NewSession(quietConfig(), host, nil)
	s.Load(sessionInput())

	s.HandleSectionClick("sources")

	if s.ActiveSection() != "sources" {
		t.Errorf("ActiveSection = %q", s.ActiveSection())
	}
	if !s.Expanded("sources") {
		t.Error("Section click should expand the section")
	}
	if s.TourState() != tour.StateFitting {
		t.Errorf("TourState = %v, want fitting", s.TourState())
	}
	host.mu.Lock()
	fits := host.fits
	host.mu.Unlock()
	if fits != 1 {
		t.Errorf("Section click should fit its bounds once, got %d", fits)
	}

	// Unknown sections are ignored
	s.StopTour()
	s.HandleSectionClick("no-such-section")
	if s.TourState() != tour.StateIdle {
		t.Error("Unknown section should not start a tour")
	}
}

func TestSession_HandleItemClickStartsAtItem(t *testing.T) {
	s := NewSession(quietConfig(), &fakeHost{}, nil)
	s.Load(sessionInput())

	s.HandleItemClick("source-1")

	if s.ActiveSection() != "sources" {
		t.Errorf("ActiveSection = %q, want sources", s.ActiveSection())
	}

	// Unknown items are ignored
	s.StopTour()
	s.HandleItemClick("no-such-node")
	if s.TourState() != tour.StateIdle {
		t.Error("Unknown item should not start a tour")
	}
}

func TestSession_HoverGatedByTour(t *testing.T) {
	log := &renderLog{}
	s := NewSession(quietConfig(), &fakeHost{}, log.render)
	s.Load(sessionInput())

	s.HoverEnter("source-0")
	res, ok := log.last()
	if !ok {
		t.Fatal("Idle hover should render")
	}
	if _, found := res.Nodes["source-0"]; !found {
		t.Error("Hover highlight should include the hovered node")
	}
	if _, found := res.Nodes["claim"]; !found {
		t.Error("Hover highlight should include connected nodes")
	}

	s.HoverLeave()
	res, _ = log.last()
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Error("HoverLeave should clear the highlight")
	}

	// While a tour is active, hover is ignored
	s.HandleSectionClick("beliefs")
	before := log.count()
	s.HoverEnter("source-0")
	s.HoverLeave()
	if log.count() != before {
		t.Error("Hover during a tour should not render")
	}
}

func TestSession_SequentialHighlight(t *testing.T) {
	log := &renderLog{}
	s := NewSession(quietConfig(), &fakeHost{}, log.render)
	s.Load(sessionInput())

	s.StartSequentialHighlight([]string{"origin", "evolution-0", "claim"})
	res, _ := log.last()
	if len(res.Nodes) != 1 {
		t.Errorf("Initial prefix = %v, want one node", res.Nodes)
	}

	s.AdvanceSequentialHighlight()
	res, _ = log.last()
	if len(res.Nodes) != 2 || len(res.Edges) != 1 {
		t.Errorf("After one advance: %d nodes %d edges, want 2 and 1",
			len(res.Nodes), len(res.Edges))
	}

	s.AdvanceSequentialHighlight()
	s.AdvanceSequentialHighlight() // Past the end: stays on the full prefix
	res, _ = log.last()
	if len(res.Nodes) != 3 || len(res.Edges) != 2 {
		t.Errorf("At the end: %d nodes %d edges, want 3 and 2",
			len(res.Nodes), len(res.Edges))
	}

	s.StopSequentialHighlight()
	res, _ = log.last()
	if len(res.Nodes) != 0 {
		t.Error("Stop should clear the sequential highlight")
	}

	// Advancing after stop is a no-op
	before := log.count()
	s.AdvanceSequentialHighlight()
	if log.count() != before {
		t.Error("Advance after stop should not render")
	}
}
