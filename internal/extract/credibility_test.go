package extract

import (
	"testing"

	"github.com/ppiankov/claimtrace/internal/model"
)

func TestCredibilityForURL_TierTable(t *testing.T) {
	extractor := New(model.CredibilityConfig{})

	cases := []struct {
		url  string
		want int
	}{
		{"https://www.cdc.gov/flu/facts", 95},
		{"https://research.mit.edu/paper", 95},
		{"https://www.who.int/news", 95},
		{"https://history.ac.uk/article", 95},
		{"https://www.reuters.com/fact-check/x", 92},
		{"https://fullfact.org/health/x", 92},
		{"https://someone.medium.com/post", 65},
		{"https://myblog.wordpress.com/2020/01", 65},
		{"https://www.tiktok.com/@user/video/1", 55},
		{"https://x.com/user/status/1", 55},
		{"https://random-site.example.net/page", 60},
		{"not a url at all", 60},
	}

	for _, tc := range cases {
		if got := extractor.CredibilityForURL(tc.url); got != tc.want {
			t.Errorf("CredibilityForURL(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestCredibilityForURL_ConfigOverrides(t *testing.T) {
	extractor := New(model.CredibilityConfig{
		DomainMap: map[string]int{
			"trusted.example.org": 180, // clamped
			"reuters.com":         10,  // override beats the tier table
		},
		Default: 42,
	})

	if got := extractor.CredibilityForURL("https://trusted.example.org/a"); got != 100 {
		t.Errorf("Override should clamp to 100, got %d", got)
	}
	if got := extractor.CredibilityForURL("https://www.reuters.com/y"); got != 10 {
		t.Errorf("Override should beat tier table, got %d", got)
	}
	if got := extractor.CredibilityForURL("https://unknown.example.com/"); got != 42 {
		t.Errorf("Configured default should apply, got %d", got)
	}
}

func TestClampCredibility(t *testing.T) {
	if got := model.ClampCredibility(-5); got != 0 {
		t.Errorf("ClampCredibility(-5) = %d, want 0", got)
	}
	if got := model.ClampCredibility(250); got != 100 {
		t.Errorf("ClampCredibility(250) = %d, want 100", got)
	}
	if got := model.ClampCredibility(73); got != 73 {
		t.Errorf("ClampCredibility(73) = %d, want 73", got)
	}
}
