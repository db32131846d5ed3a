package model

import "time"

// Config is the complete claimtrace configuration
type Config struct {
	Layout      LayoutConfig      `yaml:"layout" json:"layout"`
	Tour        TourConfig        `yaml:"tour" json:"tour"`
	Credibility CredibilityConfig `yaml:"credibility" json:"credibility"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// LayoutConfig holds the deterministic layout constants
type LayoutConfig struct {
	ClaimX float64 `yaml:"claim_x" json:"claim_x"` // Fixed claim anchor
	ClaimY float64 `yaml:"claim_y" json:"claim_y"`

	ChainSpacing  float64 `yaml:"chain_spacing" json:"chain_spacing"`   // Horizontal gap between chain nodes
	SineAmplitude float64 `yaml:"sine_amplitude" json:"sine_amplitude"` // Vertical stagger for chains > 3 nodes

	DriverColumns int     `yaml:"driver_columns" json:"driver_columns"` // Belief-driver grid width
	DriverCellW   float64 `yaml:"driver_cell_w" json:"driver_cell_w"`
	DriverCellH   float64 `yaml:"driver_cell_h" json:"driver_cell_h"`

	SourceColumns int     `yaml:"source_columns" json:"source_columns"` // Source grid width
	SourceCellW   float64 `yaml:"source_cell_w" json:"source_cell_w"`
	SourceCellH   float64 `yaml:"source_cell_h" json:"source_cell_h"`

	ExtraColumns  int     `yaml:"extra_columns" json:"extra_columns"` // Extra-link grid width
	ExtraCellW    float64 `yaml:"extra_cell_w" json:"extra_cell_w"`
	ExtraCellH    float64 `yaml:"extra_cell_h" json:"extra_cell_h"`
	MaxExtraLinks int     `yaml:"max_extra_links" json:"max_extra_links"`

	NodeWidth        float64 `yaml:"node_width" json:"node_width"` // Bounding box used by overlap resolution
	NodeHeight       float64 `yaml:"node_height" json:"node_height"`
	OverlapTolerance float64 `yaml:"overlap_tolerance" json:"overlap_tolerance"`
}

// TourConfig controls guided-tour timing and end-of-tour policy
type TourConfig struct {
	Interval       time.Duration `yaml:"interval" json:"interval"`               // Time between tour steps
	SettleDelay    time.Duration `yaml:"settle_delay" json:"settle_delay"`       // Wait after a bounds fit before playback
	CameraDuration time.Duration `yaml:"camera_duration" json:"camera_duration"` // Requested camera transition time
	FitDuration    time.Duration `yaml:"fit_duration" json:"fit_duration"`
	FitPadding     float64       `yaml:"fit_padding" json:"fit_padding"`
	MinZoom        float64       `yaml:"min_zoom" json:"min_zoom"`
	Loop           bool          `yaml:"loop" json:"loop"`             // Wrap to start instead of stopping
	AutoStart      bool          `yaml:"auto_start" json:"auto_start"` // One automatic tour per graph on first data
}

// CredibilityConfig tunes source trust scoring
type CredibilityConfig struct {
	// DomainMap overrides the built-in tier table (domain -> score)
	DomainMap map[string]int `yaml:"domain_map,omitempty" json:"domain_map,omitempty"`
	// Default is used for unknown domains
	Default int `yaml:"default" json:"default"`
}

// LLMConfig configures the optional structuring fallback.
// Empty Provider disables it entirely.
type LLMConfig struct {
	Provider          string  `yaml:"provider,omitempty" json:"provider,omitempty"` // "openai" or ""
	Model             string  `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey            string  `yaml:"api_key,omitempty" json:"-"`
	BaseURL           string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// CacheConfig controls build memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			ClaimX:           880,
			ClaimY:           400,
			ChainSpacing:     240,
			SineAmplitude:    80,
			DriverColumns:    2,
			DriverCellW:      280,
			DriverCellH:      140,
			SourceColumns:    2,
			SourceCellW:      260,
			SourceCellH:      150,
			ExtraColumns:     3,
			ExtraCellW:       220,
			ExtraCellH:       130,
			MaxExtraLinks:    6,
			NodeWidth:        200,
			NodeHeight:       90,
			OverlapTolerance: 24,
		},
		Tour: TourConfig{
			Interval:       2500 * time.Millisecond,
			SettleDelay:    900 * time.Millisecond,
			CameraDuration: 800 * time.Millisecond,
			FitDuration:    600 * time.Millisecond,
			FitPadding:     80,
			MinZoom:        0.85,
			Loop:           false,
			AutoStart:      true,
		},
		Credibility: CredibilityConfig{
			Default: 60,
		},
		LLM: LLMConfig{
			TimeoutSeconds:    30,
			MaxTokens:         1200,
			RequestsPerMinute: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
	}
}
