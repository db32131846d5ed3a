package extract

import (
	"strings"

	"github.com/ppiankov/claimtrace/internal/model"
)

// verdictKeywords maps keyword fragments to verdicts. Order matters: more
// specific phrases are checked before the generic true/false pairs so that
// "partly true" never classifies as verified and "untrue" never does either.
var verdictKeywords = []struct {
	verdict model.Verdict
	terms   []string
}{
	{model.VerdictSatire, []string{"satire", "satirical", "parody", "joke"}},
	{model.VerdictConspiracy, []string{"conspiracy"}},
	{model.VerdictDebunked, []string{"debunked", "disproven", "disproved"}},
	{model.VerdictPartiallyTrue, []string{"partially true", "partly true", "half true", "half-true"}},
	{model.VerdictMisleading, []string{"misleading", "partly", "partial", "mixed", "out of context", "missing context"}},
	{model.VerdictOutdated, []string{"outdated", "no longer accurate", "superseded"}},
	{model.VerdictExaggerated, []string{"exaggerated", "overstated", "overblown"}},
	{model.VerdictOpinion, []string{"opinion", "subjective", "editorial"}},
	{model.VerdictRumor, []string{"rumor", "rumour", "unsubstantiated", "hearsay"}},
	{model.VerdictUnverified, []string{"unverified", "unproven", "unconfirmed", "inconclusive"}},
	{model.VerdictFalse, []string{"false", "fake", "fabricated", "untrue", "hoax", "incorrect", "inaccurate", "not true"}},
	{model.VerdictVerified, []string{"true", "accurate", "verified", "correct", "confirmed"}},
}

// ClassifyVerdict matches s against the keyword table, returning the empty
// verdict when nothing matches
func ClassifyVerdict(s string) model.Verdict {
	lower := strings.ToLower(s)
	for _, entry := range verdictKeywords {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				return entry.verdict
			}
		}
	}
	return ""
}
