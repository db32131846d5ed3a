package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/claimtrace/internal/model"
)

const sampleAnalysis = `# Analysis: 5G towers spread the virus

## Origin Tracing
The claim started as a reply thread on a conspiracy forum in early 2020.

## First Seen
- Forum A (2020-01-15) [archived thread](https://example-forum.net/thread/123)
- Chat groups (2020-02-02)

## Evolution Steps
- Facebook: reframed as a leaked government memo (2020-02-20); impact: mainstream spillover
- YouTube: video compilation with fabricated citations (2020-03-05)

## Belief Drivers
- **Confirmation Bias**: people already distrustful of telecoms accepted it readily [overview](https://en.wikipedia.org/wiki/Confirmation_bias)
- **Proportionality Bias**: big events demand big causes

## Sources
- [WHO explainer](https://www.who.int/news-room/5g-explainer)
- [Reuters fact check](https://www.reuters.com/article/uk-factcheck-5g)
- [Some blog](https://myblog.substack.com/p/5g)

## Verdict
The claim is entirely false.
`

func TestExtract_FullAnalysis(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	result := extractor.Extract(sampleAnalysis)

	if result.OriginTracing.HypothesizedOrigin == "" {
		t.Fatal("Expected hypothesized origin")
	}
	if !strings.Contains(result.OriginTracing.HypothesizedOrigin, "conspiracy forum") {
		t.Errorf("Unexpected origin text: %q", result.OriginTracing.HypothesizedOrigin)
	}

	if len(result.OriginTracing.FirstSeenDates) != 2 {
		t.Fatalf("Expected 2 first-seen entries, got %d", len(result.OriginTracing.FirstSeenDates))
	}
	first := result.OriginTracing.FirstSeenDates[0]
	if first.Source != "Forum A" {
		t.Errorf("Expected source 'Forum A', got %q", first.Source)
	}
	if first.Date != "2020-01-15" {
		t.Errorf("Expected date 2020-01-15, got %q", first.Date)
	}
	if first.URL != "https://example-forum.net/thread/123" {
		t.Errorf("Unexpected first-seen URL: %q", first.URL)
	}

	if len(result.OriginTracing.EvolutionSteps) != 2 {
		t.Fatalf("Expected 2 evolution steps, got %d", len(result.OriginTracing.EvolutionSteps))
	}
	step := result.OriginTracing.EvolutionSteps[0]
	if step.Platform != "Facebook" {
		t.Errorf("Expected platform Facebook, got %q", step.Platform)
	}
	if !strings.Contains(step.Transformation, "leaked government memo") {
		t.Errorf("Unexpected transformation: %q", step.Transformation)
	}
	if step.Impact != "mainstream spillover" {
		t.Errorf("Expected impact 'mainstream spillover', got %q", step.Impact)
	}
	if step.Date != "2020-02-20" {
		t.Errorf("Expected date 2020-02-20, got %q", step.Date)
	}

	if len(result.BeliefDrivers) != 2 {
		t.Fatalf("Expected 2 belief drivers, got %d", len(result.BeliefDrivers))
	}
	if result.BeliefDrivers[0].Name != "Confirmation Bias" {
		t.Errorf("Expected 'Confirmation Bias', got %q", result.BeliefDrivers[0].Name)
	}
	if len(result.BeliefDrivers[0].References) != 1 {
		t.Errorf("Expected 1 reference on first driver, got %d", len(result.BeliefDrivers[0].References))
	}

	if len(result.Sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(result.Sources))
	}
	if result.Sources[0].Credibility != 95 {
		t.Errorf("WHO source should score 95, got %d", result.Sources[0].Credibility)
	}
	if result.Sources[1].Credibility != 92 {
		t.Errorf("Reuters source should score 92, got %d", result.Sources[1].Credibility)
	}
	if result.Sources[2].Credibility != 65 {
		t.Errorf("Substack source should score 65, got %d", result.Sources[2].Credibility)
	}

	if result.Verdict != model.VerdictFalse {
		t.Errorf("Expected verdict false, got %q", result.Verdict)
	}
}

func TestExtract_EmptyAndMalformedInput(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	for _, input := range []string{"", "   \n\n  ", "no headers at all, just prose", "## Unknown Section\n- item"} {
		result := extractor.Extract(input)
		if !result.OriginTracing.IsEmpty() {
			t.Errorf("Input %q: expected empty origin tracing", input)
		}
		if len(result.BeliefDrivers) != 0 {
			t.Errorf("Input %q: expected no belief drivers", input)
		}
		if result.Verdict != "" {
			t.Errorf("Input %q: expected no verdict", input)
		}
	}
}

func TestExtract_SectionSynonyms(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	variants := []string{
		"## Hypothesized Origin\nStarted on a fringe imageboard.",
		"**Original Source:** Started on a fringe imageboard.",
		"# Where It Started\nStarted on a fringe imageboard.",
	}
	for _, text := range variants {
		result := extractor.Extract(text)
		if !strings.Contains(result.OriginTracing.HypothesizedOrigin, "fringe imageboard") {
			t.Errorf("Variant %q: origin not extracted, got %q", text, result.OriginTracing.HypothesizedOrigin)
		}
	}
}

func TestExtract_PropagationPaths(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	result := extractor.Extract("## Propagation Paths\n- Twitter\n- Telegram channels\n- Talk radio")
	paths := result.OriginTracing.PropagationPaths
	if len(paths) != 3 {
		t.Fatalf("Expected 3 propagation paths, got %d", len(paths))
	}
	if paths[1] != "Telegram channels" {
		t.Errorf("Expected 'Telegram channels', got %q", paths[1])
	}
}

func TestExtract_SourceFallbackFromWholeText(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	text := `## Origin Tracing
Claim first appeared in [a factcheck.org piece](https://factcheck.org/x) and was
echoed by [a YouTube video](https://youtube.com/watch?v=1).
Also see [the same piece again](https://factcheck.org/x).`

	result := extractor.Extract(text)
	if len(result.Sources) != 2 {
		t.Fatalf("Expected 2 de-duplicated fallback sources, got %d", len(result.Sources))
	}
	if result.Sources[0].URL != "https://factcheck.org/x" {
		t.Errorf("Unexpected first source: %q", result.Sources[0].URL)
	}
	if result.Sources[0].Credibility != 92 {
		t.Errorf("factcheck.org should score 92, got %d", result.Sources[0].Credibility)
	}
	if result.Sources[1].Credibility != 55 {
		t.Errorf("youtube.com should score 55, got %d", result.Sources[1].Credibility)
	}
}

func TestExtract_HTMLInput(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	html := `<html><body>
	<h2>Origin Tracing</h2>
	<p>The claim began as a satirical post that was shared without context.</p>
	<h2>Sources</h2>
	<ul>
	<li><a href="https://www.snopes.com/fact-check/x">Snopes rating</a></li>
	</ul>
	<script>alert("ignored")</script>
	</body></html>`

	result := extractor.Extract(html)
	if !strings.Contains(result.OriginTracing.HypothesizedOrigin, "satirical post") {
		t.Errorf("Origin not extracted from HTML, got %q", result.OriginTracing.HypothesizedOrigin)
	}
	if len(result.Sources) != 1 {
		t.Fatalf("Expected 1 source from HTML, got %d", len(result.Sources))
	}
	if result.Sources[0].Credibility != 92 {
		t.Errorf("snopes.com should score 92, got %d", result.Sources[0].Credibility)
	}
}
