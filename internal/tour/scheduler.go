// Package tour drives the timed guided walk over graph nodes, keeping
// camera focus and sequential highlight in sync with the hosting surface.
package tour

import (
	"sync"
	"time"

	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/model"
)

// Host is the camera capability the rendering surface provides. Calls are
// fire-and-forget: the scheduler never waits for a transition to finish,
// it relies on configured delays instead.
type Host interface {
	CenterCamera(x, y float64, opts CameraOptions)
	FitToBounds(region graph.Rect, opts FitOptions)
	CurrentZoom() float64
}

// CameraOptions parameterizes a camera-center request
type CameraOptions struct {
	Duration time.Duration
	MinZoom  float64
}

// FitOptions parameterizes a bounds-fit request
type FitOptions struct {
	Duration time.Duration
	Padding  float64
}

// State is the scheduler's lifecycle phase
type State int

const (
	StateIdle    State = iota
	StateFitting       // Bounds fit requested, waiting for the settle delay
	StatePlaying
)

// Start describes one tour: the ordered node ids, where to begin, the
// region to fit first, and the whole-graph region for the end-of-tour
// zoom-out.
type Start struct {
	SectionID  string
	IDs        []string
	Index      int
	Region     graph.Rect
	FullRegion graph.Rect
}

// Scheduler is the timer-driven tour controller. All state lives behind
// one mutex; every timer callback carries the epoch it was scheduled under
// and bails out if cancellation bumped it, so a stale timer can never
// apply effects.
type Scheduler struct {
	cfg  model.TourConfig
	host Host

	// onStep receives the id list and cumulative index for sequential
	// highlighting; onClear fires when a stop clears highlight state.
	onStep  func(ids []string, index int)
	onClear func()

	mu          sync.Mutex
	lookup      func(id string) (model.Position, bool)
	state       State
	epoch       uint64
	timer       *time.Timer
	ids         []string
	index       int
	section     string
	full        graph.Rect
	hasFull     bool
	paused      bool
	lastFocused string
}

// NewScheduler creates an idle scheduler
func NewScheduler(cfg model.TourConfig, host Host, onStep func(ids []string, index int), onClear func()) *Scheduler {
	if onStep == nil {
		onStep = func([]string, int) {}
	}
	if onClear == nil {
		onClear = func() {}
	}
	return &Scheduler{cfg: cfg, host: host, onStep: onStep, onClear: onClear}
}

// SetGraph points the scheduler at a new graph's position lookup. Any
// in-flight tour is cancelled and all transient state reset.
func (s *Scheduler) SetGraph(lookup func(id string) (model.Position, bool)) {
	s.mu.Lock()
	s.cancelLocked()
	s.lookup = lookup
	s.ids = nil
	s.index = 0
	s.section = ""
	s.state = StateIdle
	s.paused = false
	s.lastFocused = ""
	s.mu.Unlock()
	s.onClear()
}

// Begin cancels any running tour, requests a fit of the start region, and
// schedules playback after the settle delay.
func (s *Scheduler) Begin(start Start) {
	if len(start.IDs) == 0 {
		return
	}

	s.mu.Lock()
	s.cancelLocked()
	epoch := s.epoch
	s.ids = append([]string(nil), start.IDs...)
	s.index = clampIndex(start.Index, len(start.IDs))
	s.section = start.SectionID
	s.full = start.FullRegion
	s.hasFull = start.FullRegion.W > 0 || start.FullRegion.H > 0
	s.paused = false
	s.state = StateFitting
	host := s.host
	s.mu.Unlock()

	host.FitToBounds(start.Region, FitOptions{
		Duration: s.cfg.FitDuration,
		Padding:  s.cfg.FitPadding,
	})
	s.schedule(epoch, s.cfg.SettleDelay, s.play)
}

// Stop cancels the tour, resets the index to 0, and clears highlight
// state. The last focused node id persists until ClearFocus is called.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancelLocked()
	s.ids = nil
	s.index = 0
	s.section = ""
	s.state = StateIdle
	s.paused = false
	s.mu.Unlock()
	s.onClear()
}

// ClearFocus drops the remembered last focused node id
func (s *Scheduler) ClearFocus() {
	s.mu.Lock()
	s.lastFocused = ""
	s.mu.Unlock()
}

// SetPlaying pauses or resumes playback without resetting the index.
// Resuming with no tour loaded is a no-op.
func (s *Scheduler) SetPlaying(playing bool) {
	s.mu.Lock()
	if !playing {
		if s.state == StatePlaying || s.state == StateFitting {
			s.cancelLocked()
			s.paused = true
		}
		s.mu.Unlock()
		return
	}
	if !s.paused || len(s.ids) == 0 {
		s.mu.Unlock()
		return
	}
	s.paused = false
	s.state = StatePlaying
	epoch := s.epoch
	s.mu.Unlock()
	s.step(epoch)
}

// State returns the current lifecycle phase
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index returns the current tour position
func (s *Scheduler) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Section returns the section id of the active tour, or ""
func (s *Scheduler) Section() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// LastFocused returns the id of the last node the tour centered on
func (s *Scheduler) LastFocused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFocused
}

// cancelLocked invalidates pending timers by bumping the epoch. Callers
// hold s.mu.
func (s *Scheduler) cancelLocked() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// schedule arms the single outstanding timer. Any previously pending timer
// was already cancelled by the epoch bump that preceded this call.
func (s *Scheduler) schedule(epoch uint64, delay time.Duration, fn func(epoch uint64)) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, func() { fn(epoch) })
	s.mu.Unlock()
}

// play transitions from fitting to playing and emits the first step
func (s *Scheduler) play(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.state = StatePlaying
	s.mu.Unlock()
	s.step(epoch)
}

// step centers the camera on the current node, emits the sequential
// highlight, and schedules the advance. A node id missing from the live
// graph skips the camera move but never halts the timer chain.
func (s *Scheduler) step(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	ids := s.ids
	index := s.index
	lookup := s.lookup
	host := s.host

	var pos model.Position
	found := false
	if lookup != nil && index < len(ids) {
		if p, ok := lookup(ids[index]); ok {
			pos = p
			found = true
			s.lastFocused = ids[index]
		}
	}
	s.mu.Unlock()

	if found {
		host.CenterCamera(pos.X, pos.Y, CameraOptions{
			Duration: s.cfg.CameraDuration,
			MinZoom:  s.cfg.MinZoom,
		})
	}
	s.onStep(ids, index)

	s.schedule(epoch, s.cfg.Interval, s.advance)
}

// advance moves to the next node, wrapping or finishing per the loop policy
func (s *Scheduler) advance(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}

	if s.index+1 < len(s.ids) {
		s.index++
		s.mu.Unlock()
		s.step(epoch)
		return
	}

	if s.cfg.Loop {
		s.index = 0
		s.mu.Unlock()
		s.step(epoch)
		return
	}

	// Non-looping end: stop and request a full zoom-out
	s.cancelLocked()
	s.ids = nil
	s.index = 0
	s.section = ""
	s.state = StateIdle
	full, hasFull := s.full, s.hasFull
	host := s.host
	s.mu.Unlock()

	s.onClear()
	if hasFull {
		host.FitToBounds(full, FitOptions{
			Duration: s.cfg.FitDuration,
			Padding:  s.cfg.FitPadding,
		})
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
