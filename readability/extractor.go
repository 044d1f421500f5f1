// Package readability implements scam.Extractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/scam"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements scam.Extractor at compile time.
var _ scam.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND if readability finds no article.
func (e *Extractor) Extract(rawHTML string) (*scam.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, scam.Errorf(scam.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, scam.Errorf(scam.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, scam.Errorf(scam.ENOTFOUND, "no main content")
	}

	return &scam.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
