package mock

import "github.com/fwojciec/scam"

var _ scam.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of scam.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]scam.Link, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]scam.Link, error) {
	return s.ExtractLinksFn(html, baseURL)
}
