// Package slog provides logging decorators for scam services.
// Each decorator delegates to the wrapped service and records one
// structured log entry per call.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scam"
)

// Ensure LoggingFetcher implements scam.Fetcher.
var _ scam.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   scam.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scam.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingLinkSelector implements scam.LinkSelector.
var _ scam.LinkSelector = (*LoggingLinkSelector)(nil)

// LoggingLinkSelector wraps a LinkSelector with debug logging.
type LoggingLinkSelector struct {
	next   scam.LinkSelector
	logger *slog.Logger
}

// NewLoggingLinkSelector creates a new LoggingLinkSelector.
func NewLoggingLinkSelector(next scam.LinkSelector, logger *slog.Logger) *LoggingLinkSelector {
	return &LoggingLinkSelector{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped selector and logs how many links
// landed in each priority band.
func (s *LoggingLinkSelector) ExtractLinks(html string, baseURL string) (links []scam.Link, err error) {
	defer func(begin time.Time) {
		bands := make(map[int]int)
		for _, link := range links {
			bands[link.Priority]++
		}
		s.logger.Debug("extract links",
			"url", baseURL,
			"count", len(links),
			"bands", bands,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExtractLinks(html, baseURL)
}

// Ensure LoggingDocumentWriter implements scam.DocumentWriter.
var _ scam.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   scam.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next scam.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) CreateDocument(ctx context.Context, doc *scam.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("document",
			"id", doc.ID,
			"url", doc.URL,
			"bytes", len(doc.Content),
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateDocument(ctx, doc)
}
