// Package trafilatura implements scam.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/scam"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements scam.Extractor at compile time.
var _ scam.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// It falls back to its readability and dom-distiller ports when its own
// heuristics find nothing.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND if the page has no recognizable main content.
func (e *Extractor) Extract(rawHTML string) (*scam.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, scam.Errorf(scam.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, scam.Errorf(scam.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, scam.Errorf(scam.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &scam.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
