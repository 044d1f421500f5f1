package scam

// Priority bands for discovered links (lower is more important).
const (
	PriorityNavigation = 0
	PriorityContent    = 1
	PriorityFooter     = 2
)

// Link represents a URL with the priority band it should be admitted at.
type Link struct {
	URL      string
	Priority int
}

// LinkSelector extracts prioritized links from fetched content.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns discovered links with priority.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]Link, error)
}
