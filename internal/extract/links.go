package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimtrace/internal/model"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^)\s]+)\)`)
	isoDateRe      = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)`)
	boldMarkRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// parseLinks pulls every [title](url) link out of s, in order
func parseLinks(s string) []model.Reference {
	var refs []model.Reference
	for _, m := range markdownLinkRe.FindAllStringSubmatch(s, -1) {
		title := strings.TrimSpace(m[1])
		if title == "" {
			title = m[2]
		}
		refs = append(refs, model.Reference{Title: title, URL: m[2]})
	}
	return refs
}

// parseDate extracts the first (YYYY-MM-DD) pattern from s, or ""
func parseDate(s string) string {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// stripMarkup removes links, parenthesized dates, and bold markers from s,
// leaving the plain label text
func stripMarkup(s string) string {
	s = markdownLinkRe.ReplaceAllString(s, "")
	s = isoDateRe.ReplaceAllString(s, "")
	s = boldMarkRe.ReplaceAllString(s, "$1")
	s = strings.Trim(s, " \t-–—:;,.")
	return strings.Join(strings.Fields(s), " ")
}

// splitLabel splits "Label: detail" on the first colon; when no colon is
// present the whole string becomes the label
func splitLabel(s string) (label, detail string) {
	if idx := strings.Index(s, ":"); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:])
	}
	return strings.TrimSpace(s), ""
}
