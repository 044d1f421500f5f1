package goquery

import (
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scam"
	"golang.org/x/net/publicsuffix"
)

// SelectorConfig defines a CSS selector and the priority band its links get.
type SelectorConfig struct {
	Selector string
	Priority int
}

// ExtractLinksWithConfigs extracts links from HTML using the provided selector configurations.
// Links are deduplicated by URL, keeping the most important (lowest) band.
// Links to other sites are filtered out.
// The returned links maintain document order based on first occurrence.
func ExtractLinksWithConfigs(html string, baseURL string, configs []SelectorConfig) ([]scam.Link, error) {
	return extractLinks(html, baseURL, configs, -1)
}

// extractLinks runs configs in order. If fallback is non-negative, any other
// same-site anchor is also collected at that band.
func extractLinks(html string, baseURL string, configs []SelectorConfig, fallback int) ([]scam.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scam.Errorf(scam.EINVALID, "invalid base URL: %v", err)
	}
	if base.Host == "" {
		return nil, scam.Errorf(scam.EINVALID, "invalid base URL: %q has no host", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scam.Errorf(scam.EINVALID, "failed to parse HTML: %v", err)
	}

	site := siteOf(base.Hostname())

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []scam.Link

	// promote lets a later match move an already collected link to a
	// more important band.
	add := func(sel *goquery.Selection, priority int, promote bool) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved, ok := resolveURL(base, href)
		if !ok {
			return
		}

		if siteOf(resolved.Hostname()) != site {
			return
		}

		u := resolved.String()
		if idx, ok := seen[u]; ok {
			if promote && priority < links[idx].Priority {
				links[idx].Priority = priority
			}
			return
		}
		seen[u] = len(links)
		links = append(links, scam.Link{URL: u, Priority: priority})
	}

	for _, config := range configs {
		doc.Find(config.Selector).Each(func(_ int, sel *goquery.Selection) {
			add(sel, config.Priority, true)
		})
	}

	if fallback >= 0 {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			add(sel, fallback, false)
		})
	}

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Self-references and non-HTTP(S) results are rejected.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}

	self := *base
	self.Fragment = ""
	self.RawFragment = ""
	if resolved.String() == self.String() {
		return nil, false
	}
	return resolved, true
}

// siteOf returns the registrable domain (eTLD+1) of host, so that
// docs.example.com and www.example.com belong to the same site.
// Hosts without one (IP addresses, localhost) are their own site.
func siteOf(host string) string {
	host = strings.ToLower(host)
	if net.ParseIP(host) != nil {
		return host
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
