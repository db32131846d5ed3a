package extract

import (
	"net/url"
	"strings"

	"github.com/ppiankov/claimtrace/internal/model"
)

// Fixed domain tier table. Scores follow the established calibration:
// institutional authorities highest, wire services and fact-checkers just
// below, personal publishing and social platforms at the bottom.
const (
	scoreAuthority = 95
	scoreFactCheck = 92
	scorePersonal  = 65
	scoreSocial    = 55
)

// authoritySuffixes match government, academic, and major health-authority hosts
var authoritySuffixes = []string{
	".gov", ".edu", ".ac.uk", ".gov.uk", ".gc.ca", ".gov.au",
}

var authorityDomains = []string{
	"who.int", "cdc.gov", "nih.gov", "nhs.uk", "europa.eu", "un.org",
	"ecdc.europa.eu",
}

// factCheckDomains are wire services and fact-checking organizations
var factCheckDomains = []string{
	"reuters.com", "apnews.com", "afp.com", "factcheck.org", "snopes.com",
	"politifact.com", "fullfact.org", "bbc.com", "bbc.co.uk",
	"leadstories.com", "checkyourfact.com", "afpfactcheck.com",
}

// personalDomains are personal-publishing platforms
var personalDomains = []string{
	"medium.com", "substack.com", "wordpress.com", "blogspot.com",
	"blogger.com", "tumblr.com", "ghost.io",
}

// socialDomains are social and video platforms
var socialDomains = []string{
	"twitter.com", "x.com", "facebook.com", "instagram.com", "tiktok.com",
	"youtube.com", "youtu.be", "reddit.com", "t.me", "telegram.org",
	"vk.com", "rumble.com", "bitchute.com", "4chan.org", "gab.com",
}

// CredibilityForURL scores a source URL via the domain tier table.
// Config overrides win over the built-in tiers; unknown domains get the
// configured default. The result is always clamped to [0,100].
func (e *Extractor) CredibilityForURL(rawURL string) int {
	host := hostOf(rawURL)
	if host == "" {
		return model.ClampCredibility(e.defaultScore())
	}

	if e.cfg.DomainMap != nil {
		for domain, score := range e.cfg.DomainMap {
			if hostMatches(host, domain) {
				return model.ClampCredibility(score)
			}
		}
	}

	for _, suffix := range authoritySuffixes {
		if strings.HasSuffix(host, suffix) {
			return scoreAuthority
		}
	}
	for _, domain := range authorityDomains {
		if hostMatches(host, domain) {
			return scoreAuthority
		}
	}
	for _, domain := range factCheckDomains {
		if hostMatches(host, domain) {
			return scoreFactCheck
		}
	}
	for _, domain := range personalDomains {
		if hostMatches(host, domain) {
			return scorePersonal
		}
	}
	for _, domain := range socialDomains {
		if hostMatches(host, domain) {
			return scoreSocial
		}
	}

	return model.ClampCredibility(e.defaultScore())
}

func (e *Extractor) defaultScore() int {
	if e.cfg.Default > 0 {
		return e.cfg.Default
	}
	return 60
}

// hostOf extracts the lowercase host of a URL, without port
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}

// hostMatches reports whether host equals domain or is a subdomain of it
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
