package crawl

import "github.com/fwojciec/scam"

var _ scam.SeenSet = (*ExactSet)(nil)

// ExactSet is a SeenSet that compares URLs by exact string equality.
// It is not safe for concurrent use.
type ExactSet struct {
	urls map[string]struct{}
}

// NewExactSet creates an empty ExactSet.
func NewExactSet() *ExactSet {
	return &ExactSet{urls: make(map[string]struct{})}
}

// Add records the URL and returns true if it was not recorded before.
func (s *ExactSet) Add(url string) bool {
	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Has returns true if the URL has been recorded.
func (s *ExactSet) Has(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of recorded URLs.
func (s *ExactSet) Len() int {
	return len(s.urls)
}
