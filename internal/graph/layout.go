package graph

import (
	"math"
	"sort"

	"github.com/ppiankov/claimtrace/internal/model"
)

// chainEntry is one pre-layout member of the evolution chain
type chainEntry struct {
	id             string
	kind           model.NodeKind
	label          string
	platform       string
	transformation string
	impact         string
	date           string
	url            string
}

// buildChainEntries merges first-seen sightings with evolution steps into
// the ordered evolution chain. Explicit evolution steps take precedence over
// the legacy propagation-path list when both exist. Entries are sorted
// chronologically when both dates are known; otherwise input order is kept
// (stable sort, no invented secondary key).
func buildChainEntries(t model.OriginTracingData) []chainEntry {
	var entries []chainEntry

	for i, fs := range t.FirstSeenDates {
		entries = append(entries, chainEntry{
			id:       idFirstSeen(i),
			kind:     model.NodePropagation,
			label:    fs.Source,
			platform: fs.Source,
			date:     fs.Date,
			url:      fs.URL,
		})
	}

	if len(t.EvolutionSteps) > 0 {
		for i, step := range t.EvolutionSteps {
			entries = append(entries, chainEntry{
				id:             idEvolution(i),
				kind:           model.NodeEvolution,
				label:          chainLabel(step.Platform, step.Transformation),
				platform:       step.Platform,
				transformation: step.Transformation,
				impact:         step.Impact,
				date:           step.Date,
			})
		}
	} else {
		for i, channel := range t.PropagationPaths {
			entries = append(entries, chainEntry{
				id:       idPropagation(i),
				kind:     model.NodePropagation,
				label:    channel,
				platform: channel,
			})
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].date == "" || entries[b].date == "" {
			return false
		}
		return entries[a].date < entries[b].date
	})

	return entries
}

// chainOffset computes the vertical stagger for chain node i of n: a
// sine-wave pattern for longer chains, a simple alternation otherwise
func (b *Builder) chainOffset(i, n int) float64 {
	if n > 3 {
		return b.cfg.SineAmplitude * math.Sin(float64(i)*math.Pi/2)
	}
	if i%2 == 0 {
		return -b.cfg.SineAmplitude / 2
	}
	return b.cfg.SineAmplitude / 2
}

// chainPosition lays chain node i of n left of the claim anchor in order
func (b *Builder) chainPosition(i, n int) model.Position {
	return model.Position{
		X: b.cfg.ClaimX - b.cfg.ChainSpacing*float64(n-i),
		Y: b.cfg.ClaimY + b.chainOffset(i, n),
	}
}

// driverPosition places belief driver i in the grid above the claim
func (b *Builder) driverPosition(i int) model.Position {
	cols := b.cfg.DriverColumns
	row, col := i/cols, i%cols
	return model.Position{
		X: b.cfg.ClaimX - b.cfg.DriverCellW/2 + float64(col)*b.cfg.DriverCellW,
		Y: b.cfg.ClaimY - b.cfg.DriverCellH - 140 - float64(row)*b.cfg.DriverCellH,
	}
}

// sourcePosition places source i in the grid below the claim
func (b *Builder) sourcePosition(i int) model.Position {
	cols := b.cfg.SourceColumns
	row, col := i/cols, i%cols
	return model.Position{
		X: b.cfg.ClaimX - b.cfg.SourceCellW/2 + float64(col)*b.cfg.SourceCellW,
		Y: b.cfg.ClaimY + 200 + float64(row)*b.cfg.SourceCellH,
	}
}

// extraPosition places extra link i in the grid below the source grid
func (b *Builder) extraPosition(i, sourceCount int) model.Position {
	cols := b.cfg.ExtraColumns
	row, col := i/cols, i%cols
	sourceRows := (sourceCount + b.cfg.SourceColumns - 1) / b.cfg.SourceColumns
	baseY := b.cfg.ClaimY + 200 + float64(sourceRows)*b.cfg.SourceCellH + 100
	return model.Position{
		X: b.cfg.ClaimX - b.cfg.ExtraCellW + float64(col)*b.cfg.ExtraCellW,
		Y: baseY + float64(row)*b.cfg.ExtraCellH,
	}
}

// chainLabel joins a platform and transformation into a node label
func chainLabel(platform, transformation string) string {
	switch {
	case platform == "":
		return transformation
	case transformation == "":
		return platform
	default:
		return platform + ": " + truncate(transformation, 60)
	}
}

// truncate shortens s to at most max runes, appending an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
