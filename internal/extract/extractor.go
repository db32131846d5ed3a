package extract

import (
	"strings"

	"github.com/ppiankov/claimtrace/internal/model"
)

// Extractor heuristically parses freeform fact-check analysis text into
// typed entities. Extraction is fail-soft: malformed or missing sections
// yield empty fields, never errors.
type Extractor struct {
	cfg model.CredibilityConfig
}

// New creates an extractor with the given credibility configuration
func New(cfg model.CredibilityConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract parses rawText into structured entities. HTML input is flattened
// to markdown-ish text first so web-pasted analyses still parse.
func (e *Extractor) Extract(rawText string) model.Extraction {
	if looksLikeHTML(rawText) {
		rawText = flattenHTML(rawText)
	}

	sections := splitSections(rawText)

	result := model.Extraction{
		OriginTracing: model.OriginTracingData{
			HypothesizedOrigin: e.parseOrigin(sections[secOrigin]),
			FirstSeenDates:     e.parseFirstSeen(sections[secFirstSeen]),
			PropagationPaths:   e.parsePropagation(sections[secPropagation]),
			EvolutionSteps:     e.parseEvolution(sections[secEvolution]),
		},
		BeliefDrivers: e.parseBeliefDrivers(sections[secBeliefs]),
		Sources:       e.parseSources(sections[secSources], rawText),
	}

	if lines, ok := sections[secVerdict]; ok {
		result.Verdict = ClassifyVerdict(strings.Join(lines, " "))
	}

	return result
}

// parseOrigin joins the section's plain lines into the hypothesized-origin
// text, falling back to the first bullet when the section is bullets-only
func (e *Extractor) parseOrigin(lines []string) string {
	plain := plainLines(lines)
	if len(plain) > 0 {
		return stripMarkup(strings.Join(plain, " "))
	}
	if bullets := bulletLines(lines); len(bullets) > 0 {
		return stripMarkup(bullets[0])
	}
	return ""
}

func (e *Extractor) parseFirstSeen(lines []string) []model.FirstSeen {
	var seen []model.FirstSeen
	for _, bullet := range bulletLines(lines) {
		entry := model.FirstSeen{
			Source: stripMarkup(bullet),
			Date:   parseDate(bullet),
		}
		if links := parseLinks(bullet); len(links) > 0 {
			entry.URL = links[0].URL
			if entry.Source == "" {
				entry.Source = links[0].Title
			}
		}
		if entry.Source == "" && entry.Date == "" && entry.URL == "" {
			continue
		}
		seen = append(seen, entry)
	}
	return seen
}

func (e *Extractor) parsePropagation(lines []string) []string {
	var channels []string
	for _, bullet := range bulletLines(lines) {
		if channel := stripMarkup(bullet); channel != "" {
			channels = append(channels, channel)
		}
	}
	return channels
}

// parseEvolution reads bullets of the form
// "Platform: transformation (YYYY-MM-DD); impact: effect"
func (e *Extractor) parseEvolution(lines []string) []model.EvolutionStep {
	var steps []model.EvolutionStep
	for _, bullet := range bulletLines(lines) {
		date := parseDate(bullet)
		label, detail := splitLabel(bullet)

		step := model.EvolutionStep{
			Platform: stripMarkup(label),
			Date:     date,
		}

		lower := strings.ToLower(detail)
		if idx := strings.Index(lower, "impact:"); idx >= 0 {
			step.Impact = stripMarkup(detail[idx+len("impact:"):])
			detail = detail[:idx]
		}
		step.Transformation = stripMarkup(detail)

		if step.Platform == "" && step.Transformation == "" {
			continue
		}
		// A bullet with no colon is a bare transformation, not a platform
		if step.Transformation == "" && !strings.Contains(bullet, ":") {
			step.Transformation = step.Platform
			step.Platform = ""
		}
		steps = append(steps, step)
	}
	return steps
}

// parseBeliefDrivers reads bullets of the form "**Name**: description",
// pulling embedded links out as references
func (e *Extractor) parseBeliefDrivers(lines []string) []model.BeliefDriver {
	var drivers []model.BeliefDriver
	for _, bullet := range bulletLines(lines) {
		name, description := splitLabel(bullet)
		driver := model.BeliefDriver{
			Name:        stripMarkup(name),
			Description: stripMarkup(description),
			References:  parseLinks(bullet),
		}
		if driver.Name == "" {
			continue
		}
		drivers = append(drivers, driver)
	}
	return drivers
}

// parseSources reads the dedicated sources section when present; otherwise
// every markdown link in the whole text becomes a candidate source.
// Sources are de-duplicated by URL and scored via the domain tier table.
func (e *Extractor) parseSources(lines []string, fullText string) []model.FactCheckSource {
	var links []model.Reference
	if len(lines) > 0 {
		links = parseLinks(strings.Join(lines, "\n"))
	}
	if len(links) == 0 {
		links = parseLinks(fullText)
	}

	seen := make(map[string]bool)
	var sources []model.FactCheckSource
	for _, link := range links {
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		sources = append(sources, model.FactCheckSource{
			URL:         link.URL,
			Title:       link.Title,
			Source:      hostOf(link.URL),
			Credibility: e.CredibilityForURL(link.URL),
		})
	}
	return sources
}
