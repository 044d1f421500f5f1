package mock

import "github.com/fwojciec/scam"

var _ scam.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scam.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*scam.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*scam.ExtractResult, error) {
	return e.ExtractFn(html)
}
