package extract

import (
	"regexp"
	"strings"
)

// sectionKind identifies one target section of the analysis text
type sectionKind int

const (
	secNone sectionKind = iota
	secOrigin
	secFirstSeen
	secPropagation
	secEvolution
	secBeliefs
	secSources
	secVerdict
)

// sectionSynonyms maps header text fragments to sections. Matching is
// case-insensitive substring containment, first hit wins in this order.
var sectionSynonyms = []struct {
	kind  sectionKind
	terms []string
}{
	{secFirstSeen, []string{"first seen", "first appearance", "first reported", "earliest sighting"}},
	{secEvolution, []string{"evolution", "how the claim evolved", "mutation", "timeline of the claim"}},
	{secPropagation, []string{"propagation", "how it spread", "spread path", "channels"}},
	{secOrigin, []string{"origin tracing", "original source", "hypothesized origin", "where it started", "origin"}},
	{secBeliefs, []string{"belief driver", "why people believe", "psychological driver", "psychology of belief", "cognitive bias"}},
	{secSources, []string{"fact-check source", "fact check source", "sources", "references", "citations"}},
	{secVerdict, []string{"verdict", "conclusion", "rating", "assessment"}},
}

var (
	// **Label:** optionally followed by inline content
	boldLabelRe = regexp.MustCompile(`^\*\*([^*]+?):?\*\*:?\s*(.*)$`)
	headerRe    = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)
)

// splitSections walks the text line by line, assigning each line to the
// section opened by the most recent matching header. Lines before any
// matched header, and lines under unrecognized headers, are dropped.
func splitSections(text string) map[sectionKind][]string {
	sections := make(map[sectionKind][]string)
	current := secNone

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if header, rest, ok := headerLine(trimmed); ok {
			current = matchSection(header)
			if current != secNone && rest != "" {
				sections[current] = append(sections[current], rest)
			}
			continue
		}

		if current != secNone {
			sections[current] = append(sections[current], trimmed)
		}
	}

	return sections
}

// headerLine reports whether the line opens a section, returning the header
// text and any inline content after a bold label
func headerLine(line string) (header, rest string, ok bool) {
	if m := headerRe.FindStringSubmatch(line); m != nil {
		return m[1], "", true
	}
	if m := boldLabelRe.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

// matchSection maps header text to a section kind, case-insensitively
func matchSection(header string) sectionKind {
	normalized := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(header), ":"))
	for _, entry := range sectionSynonyms {
		for _, term := range entry.terms {
			if strings.Contains(normalized, term) {
				return entry.kind
			}
		}
	}
	return secNone
}

// bulletLines returns the bullet items among lines, with the marker stripped.
// Non-bullet lines are ignored.
func bulletLines(lines []string) []string {
	var items []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			items = append(items, strings.TrimSpace(trimmed[2:]))
		}
	}
	return items
}

// plainLines returns the non-bullet lines among lines
func plainLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
