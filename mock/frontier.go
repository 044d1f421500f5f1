package mock

import "github.com/fwojciec/scam"

var _ scam.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of scam.URLFrontier.
type URLFrontier struct {
	PushFn  func(url string, priority int) error
	PopFn   func() (string, bool)
	EmptyFn func() bool
	LenFn   func() int
}

func (f *URLFrontier) Push(url string, priority int) error {
	return f.PushFn(url, priority)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Empty() bool {
	return f.EmptyFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

var _ scam.SeenSet = (*SeenSet)(nil)

// SeenSet is a mock implementation of scam.SeenSet.
type SeenSet struct {
	AddFn func(url string) bool
	HasFn func(url string) bool
	LenFn func() int
}

func (s *SeenSet) Add(url string) bool {
	return s.AddFn(url)
}

func (s *SeenSet) Has(url string) bool {
	return s.HasFn(url)
}

func (s *SeenSet) Len() int {
	return s.LenFn()
}
