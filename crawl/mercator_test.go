package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMercator(t *testing.T, depth, width int) *crawl.Mercator {
	t.Helper()
	m, err := crawl.NewMercator(depth, width)
	require.NoError(t, err)
	return m
}

// drain pops until the frontier reports empty.
func drain(t *testing.T, m *crawl.Mercator) []string {
	t.Helper()
	var urls []string
	for {
		url, ok := m.Pop()
		if !ok {
			return urls
		}
		urls = append(urls, url)
	}
}

func TestNewMercator(t *testing.T) {
	t.Parallel()

	t.Run("allocates empty queues", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 3, 4)

		assert.True(t, m.Empty())
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 3, m.Depth())
		assert.Equal(t, 4, m.Width())
		assert.Equal(t, 0, m.Cursor())
	})

	t.Run("rejects non-positive depth", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.NewMercator(0, 1)

		assert.Equal(t, scam.EINVALID, scam.ErrorCode(err))
	})

	t.Run("rejects non-positive width", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.NewMercator(1, 0)

		assert.Equal(t, scam.EINVALID, scam.ErrorCode(err))
	})
}

func TestNewMercatorWithSeeds(t *testing.T) {
	t.Parallel()

	t.Run("admits seeds by priority", func(t *testing.T) {
		t.Parallel()

		m, err := crawl.NewMercatorWithSeeds([]scam.Link{
			{URL: "https://example.com/low", Priority: 1},
			{URL: "https://example.com/high", Priority: 0},
			{URL: "https://example.com/high", Priority: 1},
		}, 2, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
		assert.Equal(t, []string{"https://example.com/high", "https://example.com/low"}, drain(t, m))
	})

	t.Run("rejects whole batch on bad priority", func(t *testing.T) {
		t.Parallel()

		m, err := crawl.NewMercatorWithSeeds([]scam.Link{
			{URL: "https://example.com/a", Priority: 0},
			{URL: "https://example.com/b", Priority: 2},
		}, 2, 1)

		assert.Nil(t, m)
		assert.Equal(t, scam.EBADPRIORITY, scam.ErrorCode(err))
	})

	t.Run("rejects negative priority", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.NewMercatorWithSeeds([]scam.Link{
			{URL: "https://example.com/a", Priority: -1},
		}, 2, 1)

		assert.Equal(t, scam.EBADPRIORITY, scam.ErrorCode(err))
	})
}

func TestMercator_Push(t *testing.T) {
	t.Parallel()

	t.Run("ignores duplicate URLs at any priority", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 3, 2)

		require.NoError(t, m.Push("https://example.com/page", 2))
		require.NoError(t, m.Push("https://example.com/page", 2))
		require.NoError(t, m.Push("https://example.com/page", 0))

		assert.Equal(t, 1, m.Len())
		assert.Equal(t, []string{"https://example.com/page"}, drain(t, m))

		// Dispatched URLs stay seen
		require.NoError(t, m.Push("https://example.com/page", 0))
		assert.True(t, m.Empty())
	})

	t.Run("rejects priority equal to depth", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 3, 2)
		require.NoError(t, m.Push("https://example.com/a", 0))

		err := m.Push("https://example.com/b", 3)

		assert.Equal(t, scam.EBADPRIORITY, scam.ErrorCode(err))
		assert.Equal(t, 1, m.Len(), "rejected push must not change size")
		assert.False(t, m.Seen("https://example.com/b"), "rejected URL must not be marked seen")

		// The URL can still be admitted at a valid priority
		require.NoError(t, m.Push("https://example.com/b", 2))
		assert.Equal(t, 2, m.Len())
	})

	t.Run("rejects negative priority", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 3, 2)

		err := m.Push("https://example.com/a", -1)

		assert.Equal(t, scam.EBADPRIORITY, scam.ErrorCode(err))
		assert.True(t, m.Empty())
	})
}

func TestMercator_Pop(t *testing.T) {
	t.Parallel()

	t.Run("returns false when empty", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 2, 2)

		url, ok := m.Pop()

		assert.False(t, ok)
		assert.Empty(t, url)
		assert.Equal(t, 0, m.Cursor(), "empty pop must not move the cursor")
	})

	t.Run("drains higher priority first", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 2, 2)
		require.NoError(t, m.Push("https://example.com/a", 1))
		require.NoError(t, m.Push("https://example.com/b", 0))

		assert.Equal(t, []string{"https://example.com/b", "https://example.com/a"}, drain(t, m))
	})

	t.Run("keeps FIFO order within a band", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 1, 1)
		for i := range 5 {
			require.NoError(t, m.Push(fmt.Sprintf("https://example.com/%d", i), 0))
		}

		assert.Equal(t, []string{
			"https://example.com/0",
			"https://example.com/1",
			"https://example.com/2",
			"https://example.com/3",
			"https://example.com/4",
		}, drain(t, m))
	})

	t.Run("refills a back queue with a whole front queue", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 2, 2)
		require.NoError(t, m.Push("https://example.com/a0", 0))
		require.NoError(t, m.Push("https://example.com/b0", 0))
		require.NoError(t, m.Push("https://example.com/c1", 1))

		// Slot 0 takes both band-0 URLs, slot 1 takes the band-1 URL,
		// then the cursor wraps back to slot 0.
		assert.Equal(t, []string{
			"https://example.com/a0",
			"https://example.com/c1",
			"https://example.com/b0",
		}, drain(t, m))
	})

	t.Run("does not preempt a filled back queue", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 2, 1)
		require.NoError(t, m.Push("https://example.com/x1", 1))
		require.NoError(t, m.Push("https://example.com/y1", 1))

		url, ok := m.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/x1", url)

		// A higher-priority arrival waits until the back queue is drained
		require.NoError(t, m.Push("https://example.com/z0", 0))

		assert.Equal(t, []string{"https://example.com/y1", "https://example.com/z0"}, drain(t, m))
	})

	t.Run("reassigns the cursor to the nearest non-empty back queue", func(t *testing.T) {
		t.Parallel()

		m := newMercator(t, 1, 3)
		require.NoError(t, m.Push("https://example.com/a", 0))
		require.NoError(t, m.Push("https://example.com/b", 0))
		require.NoError(t, m.Push("https://example.com/c", 0))

		// Slot 0 is refilled with everything
		url, _ := m.Pop()
		assert.Equal(t, "https://example.com/a", url)
		assert.Equal(t, 1, m.Cursor())

		// Slots 1 and 2 are empty with nothing to refill from, so the probe
		// wraps to slot 0 and the cursor advances past it.
		url, _ = m.Pop()
		assert.Equal(t, "https://example.com/b", url)
		assert.Equal(t, 1, m.Cursor())

		url, _ = m.Pop()
		assert.Equal(t, "https://example.com/c", url)
		assert.Equal(t, 1, m.Cursor())

		assert.True(t, m.Empty())
	})
}

func TestMercator_round_robin_advances_cursor(t *testing.T) {
	t.Parallel()

	m := newMercator(t, 3, 3)
	require.NoError(t, m.Push("https://example.com/a", 0))
	require.NoError(t, m.Push("https://example.com/b", 1))
	require.NoError(t, m.Push("https://example.com/c", 2))

	pop := func() (string, int) {
		url, ok := m.Pop()
		require.True(t, ok)
		return url, m.Cursor()
	}

	// Each slot is refilled from the next non-empty band
	url, cursor := pop()
	assert.Equal(t, "https://example.com/a", url)
	assert.Equal(t, 1, cursor)

	url, cursor = pop()
	assert.Equal(t, "https://example.com/b", url)
	assert.Equal(t, 2, cursor)

	url, cursor = pop()
	assert.Equal(t, "https://example.com/c", url)
	assert.Equal(t, 0, cursor, "cursor wraps modulo width")

	require.NoError(t, m.Push("https://example.com/x", 0))
	require.NoError(t, m.Push("https://example.com/y", 0))

	// Refill at slot 0, then advance to slot 1
	url, cursor = pop()
	assert.Equal(t, "https://example.com/x", url)
	assert.Equal(t, 1, cursor)

	// Slot 1 is empty with nothing to refill from; served by slot 0,
	// after which the cursor advances to slot 1 again
	url, cursor = pop()
	assert.Equal(t, "https://example.com/y", url)
	assert.Equal(t, 1, cursor)
}

func TestMercator_exhaustion(t *testing.T) {
	t.Parallel()

	const k = 25
	seeds := make([]scam.Link, 0, k)
	for i := range k {
		seeds = append(seeds, scam.Link{URL: fmt.Sprintf("https://example.com/%d", i), Priority: i % 4})
	}

	m, err := crawl.NewMercatorWithSeeds(seeds, 4, 3)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := range k {
		assert.False(t, m.Empty(), "frontier must not be empty before pop %d", i+1)
		url, ok := m.Pop()
		require.True(t, ok, "pop %d should return a URL", i+1)
		assert.False(t, seen[url], "URL %s returned twice", url)
		seen[url] = true
	}

	assert.True(t, m.Empty())
	_, ok := m.Pop()
	assert.False(t, ok, "pop k+1 should return the empty sentinel")
}

func TestMercator_concurrent_access(t *testing.T) {
	t.Parallel()

	const (
		numGoroutines = 10
		numURLs       = 200
		depth         = 4
	)

	m := newMercator(t, depth, 5)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := range numGoroutines {
		go func() {
			defer wg.Done()
			for j := range numURLs {
				// Same pool from every goroutine, at differing priorities
				url := fmt.Sprintf("https://example.com/%d", j)
				assert.NoError(t, m.Push(url, (j+g)%depth))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, numURLs, m.Len())

	var mu sync.Mutex
	popped := make(map[string]int)
	wg.Add(numGoroutines)
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for {
				url, ok := m.Pop()
				if !ok {
					return
				}
				mu.Lock()
				popped[url]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, popped, numURLs)
	for url, count := range popped {
		assert.Equal(t, 1, count, "URL %s popped more than once", url)
	}
	assert.True(t, m.Empty())
}

func TestMercator_concurrent_push_and_pop(t *testing.T) {
	t.Parallel()

	m := newMercator(t, 3, 4)

	const numGoroutines = 8
	const numOpsPerGoroutine = 100

	var mu sync.Mutex
	popped := make(map[string]int)

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)
	for i := range numGoroutines {
		go func() {
			defer wg.Done()
			for j := range numOpsPerGoroutine {
				assert.NoError(t, m.Push(fmt.Sprintf("https://example.com/%d/%d", i%4, j), j%3))
			}
		}()
	}
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numOpsPerGoroutine {
				if url, ok := m.Pop(); ok {
					mu.Lock()
					popped[url]++
					mu.Unlock()
				}
				m.Len()
			}
		}()
	}
	wg.Wait()

	for _, url := range drain(t, m) {
		popped[url]++
	}

	// 4 distinct prefixes x numOpsPerGoroutine paths
	assert.Len(t, popped, 4*numOpsPerGoroutine)
	for url, count := range popped {
		assert.Equal(t, 1, count, "URL %s popped more than once", url)
	}
}

func TestMercator_WithSeenSet(t *testing.T) {
	t.Parallel()

	seen := crawl.NewExactSet()
	seen.Add("https://example.com/already")

	m, err := crawl.NewMercator(1, 1, crawl.WithSeenSet(seen))
	require.NoError(t, err)

	require.NoError(t, m.Push("https://example.com/already", 0))
	require.NoError(t, m.Push("https://example.com/new", 0))

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, seen.Len())
}
