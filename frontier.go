package scam

// URLFrontier decides which URL a fetcher visits next.
// Implementations are safe for concurrent use by multiple goroutines.
type URLFrontier interface {
	// Push admits a URL at the given priority band (0 is highest).
	// URLs that were already admitted are ignored without error.
	// Returns EBADPRIORITY if the band is outside the configured range.
	Push(url string, priority int) error

	// Pop removes and returns the next URL to visit.
	// The bool result is false if the frontier is empty.
	Pop() (string, bool)

	// Empty reports whether no URLs are waiting to be dispatched.
	Empty() bool

	// Len returns the number of URLs waiting to be dispatched.
	Len() int
}

// SeenSet records every URL ever admitted to a frontier.
// Implementations need not be safe for concurrent use; frontiers guard
// their seen set with the same lock as their queues.
type SeenSet interface {
	// Add records the URL and returns true if it was not recorded before.
	Add(url string) bool

	// Has returns true if the URL has been recorded.
	Has(url string) bool

	// Len returns the number of recorded URLs.
	Len() int
}
