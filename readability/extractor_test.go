package readability_test

import (
	"testing"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, scam.EINVALID, scam.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_RemovesNavigationAndFooter(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
<footer><p>Footer copyright notice</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "main article content")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright notice")
}

func TestExtractor_PreservesCodeAndLinks(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h2>Usage</h2>
<p>Read the <a href="https://example.com/guide">guide</a> before you start crawling.</p>
<p>Call <code>crawl.NewMercator</code> with a depth and a width to build a frontier.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, `href="https://example.com/guide"`)
	assert.Contains(t, result.ContentHTML, "<code>crawl.NewMercator</code>")
}
