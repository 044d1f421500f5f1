// Package bloom provides approximate URL deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/scam"
)

var _ scam.SeenSet = (*Filter)(nil)

// Filter is a SeenSet backed by a Bloom filter. Memory use is fixed at
// construction. A false positive makes the frontier skip a URL it has
// never seen; there are no false negatives.
//
// Filter is not safe for concurrent use; frontiers call it under their lock.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records the URL and returns true if it was not (probably) recorded before.
func (f *Filter) Add(url string) bool {
	return !f.f.TestOrAddString(url)
}

// Has returns true if the URL might have been recorded.
func (f *Filter) Has(url string) bool {
	return f.f.TestString(url)
}

// Len returns the approximate number of recorded URLs.
func (f *Filter) Len() int {
	return int(f.f.ApproximatedSize())
}
