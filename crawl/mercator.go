package crawl

import (
	"sync"

	"github.com/fwojciec/scam"
)

var _ scam.URLFrontier = (*Mercator)(nil)

// Mercator is a two-tier priority frontier. URLs enter one of depth front
// queues by priority band and are dispatched from width back queues, one
// per fetcher slot, drained round-robin.
//
// An empty back queue is refilled with the entire contents of the
// highest-priority non-empty front queue. Once filled, a back queue is
// drained completely before it is refilled, even if higher-priority URLs
// arrive in the meantime.
//
// It is safe for concurrent use by multiple goroutines.
type Mercator struct {
	mu     sync.Mutex
	seen   scam.SeenSet
	front  []queue
	back   []queue
	cursor int
}

// MercatorOption configures a Mercator.
type MercatorOption func(*Mercator)

// WithSeenSet sets the set used for URL deduplication.
// Defaults to an ExactSet.
func WithSeenSet(seen scam.SeenSet) MercatorOption {
	return func(m *Mercator) {
		m.seen = seen
	}
}

// NewMercator creates an empty Mercator with depth priority bands
// and width back queues.
func NewMercator(depth, width int, opts ...MercatorOption) (*Mercator, error) {
	if depth <= 0 {
		return nil, scam.Errorf(scam.EINVALID, "priority depth must be positive, got %d", depth)
	}
	if width <= 0 {
		return nil, scam.Errorf(scam.EINVALID, "back queue width must be positive, got %d", width)
	}

	m := &Mercator{
		front: make([]queue, depth),
		back:  make([]queue, width),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.seen == nil {
		m.seen = NewExactSet()
	}
	return m, nil
}

// NewMercatorWithSeeds is like NewMercator but admits the seed links.
// Every seed priority is checked before any seed is admitted, so a batch
// containing an out-of-range priority is rejected as a whole.
func NewMercatorWithSeeds(seeds []scam.Link, depth, width int, opts ...MercatorOption) (*Mercator, error) {
	m, err := NewMercator(depth, width, opts...)
	if err != nil {
		return nil, err
	}

	for _, seed := range seeds {
		if err := m.checkPriority(seed.Priority); err != nil {
			return nil, err
		}
	}
	for _, seed := range seeds {
		m.push(seed.URL, seed.Priority)
	}
	return m, nil
}

// Push adds a URL to the front queue for its priority band.
// URLs that were already seen are ignored.
// Returns EBADPRIORITY if priority is outside [0, depth).
func (m *Mercator) Push(url string, priority int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkPriority(priority); err != nil {
		return err
	}
	m.push(url, priority)
	return nil
}

func (m *Mercator) checkPriority(priority int) error {
	if priority < 0 || priority >= len(m.front) {
		return scam.Errorf(scam.EBADPRIORITY, "priority %d out of range [0, %d)", priority, len(m.front))
	}
	return nil
}

// push records url as seen before queueing it.
func (m *Mercator) push(url string, priority int) {
	if m.seen.Add(url) {
		m.front[priority].push(url)
	}
}

// Pop returns the next URL from the back queue under the cursor and
// advances the cursor. The bool result is false if the frontier is empty.
func (m *Mercator) Pop() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.empty() {
		return "", false
	}

	if m.back[m.cursor].len() == 0 {
		if i := m.highestFront(); i >= 0 {
			m.front[i].drainInto(&m.back[m.cursor])
		} else {
			m.cursor = m.nextBack()
		}
	}

	url, _ := m.back[m.cursor].pop()
	m.cursor = (m.cursor + 1) % len(m.back)
	return url, true
}

// highestFront returns the index of the lowest-numbered non-empty front
// queue, or -1 if every front queue is empty.
func (m *Mercator) highestFront() int {
	for i := range m.front {
		if m.front[i].len() > 0 {
			return i
		}
	}
	return -1
}

// nextBack probes forward from the cursor for a non-empty back queue.
// Callers must hold the lock and have checked that some back queue is non-empty.
func (m *Mercator) nextBack() int {
	for i := range len(m.back) {
		idx := (m.cursor + i) % len(m.back)
		if m.back[idx].len() > 0 {
			return idx
		}
	}
	panic("crawl: back queue probe found no URLs in non-empty mercator")
}

// Empty reports whether every front and back queue is empty.
func (m *Mercator) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.empty()
}

func (m *Mercator) empty() bool {
	return m.size() == 0
}

// Len returns the number of URLs across all front and back queues.
func (m *Mercator) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size()
}

func (m *Mercator) size() int {
	n := 0
	for i := range m.front {
		n += m.front[i].len()
	}
	for i := range m.back {
		n += m.back[i].len()
	}
	return n
}

// Seen returns true if the URL has been queued or dispatched.
func (m *Mercator) Seen(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen.Has(url)
}

// Cursor returns the index of the back queue the next Pop starts from.
func (m *Mercator) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Depth returns the number of priority bands.
func (m *Mercator) Depth() int { return len(m.front) }

// Width returns the number of back queues.
func (m *Mercator) Width() int { return len(m.back) }
