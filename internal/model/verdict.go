package model

// Verdict is the closed classification of a fact-checked claim
type Verdict string

const (
	VerdictVerified      Verdict = "verified"
	VerdictMisleading    Verdict = "misleading"
	VerdictFalse         Verdict = "false"
	VerdictUnverified    Verdict = "unverified"
	VerdictSatire        Verdict = "satire"
	VerdictPartiallyTrue Verdict = "partially_true"
	VerdictOutdated      Verdict = "outdated"
	VerdictExaggerated   Verdict = "exaggerated"
	VerdictOpinion       Verdict = "opinion"
	VerdictRumor         Verdict = "rumor"
	VerdictConspiracy    Verdict = "conspiracy"
	VerdictDebunked      Verdict = "debunked"
)

// Known reports whether v is one of the defined verdict variants
func (v Verdict) Known() bool {
	switch v {
	case VerdictVerified, VerdictMisleading, VerdictFalse, VerdictUnverified,
		VerdictSatire, VerdictPartiallyTrue, VerdictOutdated, VerdictExaggerated,
		VerdictOpinion, VerdictRumor, VerdictConspiracy, VerdictDebunked:
		return true
	default:
		return false
	}
}

// Refuting reports whether the verdict indicates the claim is not credible
func (v Verdict) Refuting() bool {
	switch v {
	case VerdictFalse, VerdictMisleading, VerdictDebunked, VerdictConspiracy,
		VerdictRumor, VerdictExaggerated:
		return true
	default:
		return false
	}
}
