// Package goquery implements scam.LinkSelector using CSS selectors.
package goquery

import "github.com/fwojciec/scam"

var _ scam.LinkSelector = (*Selector)(nil)

// DefaultConfigs maps common page regions to priority bands.
//
// Priority order (most to least important):
//   - Navigation: nav, [role="navigation"], .toc, .sidebar, aside, .menu
//   - Content: main, article, .content
//   - Footer: footer, .footer
func DefaultConfigs() []SelectorConfig {
	return []SelectorConfig{
		{Selector: `nav a[href], [role="navigation"] a[href], .toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href], .nav a[href], .menu a[href], .navbar a[href]`, Priority: scam.PriorityNavigation},
		{Selector: "main a[href], article a[href], .content a[href], .doc-content a[href]", Priority: scam.PriorityContent},
		{Selector: "footer a[href], .footer a[href]", Priority: scam.PriorityFooter},
	}
}

// Selector extracts same-site links and assigns each the band of the page
// region it was found in. Anchors outside every configured region land in
// the content band.
type Selector struct {
	configs  []SelectorConfig
	fallback int
}

// NewSelector creates a Selector using DefaultConfigs.
func NewSelector() *Selector {
	return &Selector{
		configs:  DefaultConfigs(),
		fallback: scam.PriorityContent,
	}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// The baseURL resolves relative links and decides which site is "same".
func (s *Selector) ExtractLinks(html string, baseURL string) ([]scam.Link, error) {
	return extractLinks(html, baseURL, s.configs, s.fallback)
}
