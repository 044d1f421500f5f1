package crawl

import (
	"sync"

	"github.com/fwojciec/scam"
)

// Compile-time interface verification.
var _ scam.URLFrontier = FIFO{}

// Frontier is an in-memory FIFO URL frontier with exact deduplication.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  scam.SeenSet
	queue queue
}

// NewFrontier creates a new Frontier and admits the seed URLs in order.
// Duplicate seeds are admitted once.
func NewFrontier(seeds ...string) *Frontier {
	return NewFrontierWithSeen(NewExactSet(), seeds...)
}

// NewFrontierWithSeen is like NewFrontier but records admitted URLs in seen.
func NewFrontierWithSeen(seen scam.SeenSet, seeds ...string) *Frontier {
	f := &Frontier{seen: seen}
	for _, url := range seeds {
		f.push(url)
	}
	return f
}

// Push adds a URL to the tail of the frontier.
// Returns false if the URL has already been seen.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.push(url)
}

func (f *Frontier) push(url string) bool {
	if !f.seen.Add(url) {
		return false
	}
	f.queue.push(url)
	return true
}

// Pop removes and returns the URL at the head of the frontier.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.pop()
}

// Empty reports whether the frontier has no URLs waiting.
func (f *Frontier) Empty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.len() == 0
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.len()
}

// Seen returns true if the URL has been queued or popped.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Has(url)
}

// FIFO adapts a Frontier to scam.URLFrontier.
// Priority bands are ignored and Push never fails.
type FIFO struct {
	*Frontier
}

// Push adds a URL to the tail of the frontier, ignoring priority.
func (f FIFO) Push(url string, _ int) error {
	f.Frontier.Push(url)
	return nil
}
