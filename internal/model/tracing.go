package model

// FirstSeen records the earliest observed sighting of a claim on a channel
type FirstSeen struct {
	Source string `json:"source"`         // Channel or outlet name
	Date   string `json:"date,omitempty"` // ISO date (YYYY-MM-DD) when known
	URL    string `json:"url,omitempty"`  // Link to the sighting
}

// EvolutionStep describes one transformation of the claim as it spread
type EvolutionStep struct {
	Platform       string `json:"platform"`         // Where the transformation happened
	Transformation string `json:"transformation"`   // What changed
	Impact         string `json:"impact,omitempty"` // Observed effect, if noted
	Date           string `json:"date,omitempty"`   // ISO date (YYYY-MM-DD) when known
}

// OriginTracingData captures where a claim started and how it moved
type OriginTracingData struct {
	HypothesizedOrigin string          `json:"hypothesized_origin,omitempty"`
	FirstSeenDates     []FirstSeen     `json:"first_seen_dates,omitempty"`
	PropagationPaths   []string        `json:"propagation_paths,omitempty"` // Legacy channel list, superseded by EvolutionSteps
	EvolutionSteps     []EvolutionStep `json:"evolution_steps,omitempty"`
}

// IsEmpty reports whether no origin material was extracted at all
func (o OriginTracingData) IsEmpty() bool {
	return o.HypothesizedOrigin == "" &&
		len(o.FirstSeenDates) == 0 &&
		len(o.PropagationPaths) == 0 &&
		len(o.EvolutionSteps) == 0
}

// Reference is a titled link supporting a belief driver
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// BeliefDriver names a psychological or social factor sustaining belief in a claim
type BeliefDriver struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	References  []Reference `json:"references,omitempty"`
}

// FactCheckSource is a corroborating or refuting source with a trust score
type FactCheckSource struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      string `json:"source,omitempty"` // Outlet label (usually the domain)
	Credibility int    `json:"credibility"`      // 0-100, clamped at ingestion
}

// Extraction is the full set of typed entities parsed from analysis text
type Extraction struct {
	OriginTracing OriginTracingData `json:"origin_tracing"`
	BeliefDrivers []BeliefDriver    `json:"belief_drivers,omitempty"`
	Sources       []FactCheckSource `json:"sources,omitempty"`
	Verdict       Verdict           `json:"verdict,omitempty"`
}

// IsEmpty reports whether the extraction found nothing usable
func (e Extraction) IsEmpty() bool {
	return e.OriginTracing.IsEmpty() && len(e.BeliefDrivers) == 0 &&
		len(e.Sources) == 0 && e.Verdict == ""
}

// ClampCredibility forces a credibility value into the [0,100] range
func ClampCredibility(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
