package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/scam/bloom"
	"github.com/fwojciec/scam/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_AddAndHas(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// URL not yet added should return false
	assert.False(t, f.Has("https://example.com/page1"))

	assert.True(t, f.Add("https://example.com/page1"), "first add reports a new URL")

	assert.True(t, f.Has("https://example.com/page1"))
	assert.False(t, f.Has("https://example.com/page2"))
}

func TestFilter_Len(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, 0, f.Len())

	f.Add("https://example.com/page1")
	f.Add("https://example.com/page2")
	f.Add("https://example.com/page3")

	// Estimated count should be approximately 3
	count := f.Len()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	url := "https://example.com/page1"

	f.Add(url)
	countAfterFirst := f.Len()

	assert.False(t, f.Add(url))
	assert.False(t, f.Add(url))

	assert.Equal(t, countAfterFirst, f.Len())
	assert.True(t, f.Has(url))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Has(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

func TestFilter_deduplicates_Mercator(t *testing.T) {
	t.Parallel()

	m, err := crawl.NewMercator(2, 2, crawl.WithSeenSet(bloom.NewFilter(100, 0.001)))
	require.NoError(t, err)

	require.NoError(t, m.Push("https://example.com/a", 0))
	require.NoError(t, m.Push("https://example.com/a", 1))
	require.NoError(t, m.Push("https://example.com/b", 1))

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Seen("https://example.com/a"))
}
