// Package crawl provides URL frontiers and the crawl driver that pulls
// from them. Frontiers decide which URL a fetcher visits next; the
// Crawler runs a pool of fetchers against a frontier and emits documents.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scam"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawler defaults.
const (
	defaultConcurrency   = 10
	defaultPriorityDepth = 3
	defaultPollInterval  = 10 * time.Millisecond
)

// Crawler runs concurrent fetchers against a URL frontier.
// Each fetcher independently pops a URL, fetches it, emits a document
// and pushes the links it discovers back into the frontier.
type Crawler struct {
	Fetcher   scam.Fetcher
	Links     scam.LinkSelector   // optional; nil disables link discovery
	Filter    *scam.URLFilter     // optional; discovered links must match
	Extractor scam.Extractor      // optional; strips boilerplate before conversion
	Converter scam.Converter      // optional; converts fetched HTML before emitting
	Documents scam.DocumentWriter // optional sink for emitted documents
	Logger    *slog.Logger

	// Frontier, if set, is used as-is instead of building a Mercator
	// from PriorityDepth and BackWidth.
	Frontier scam.URLFrontier

	Concurrency   int
	PriorityDepth int
	BackWidth     int // defaults to Concurrency
	RetryDelays   []time.Duration
	PollInterval  time.Duration
}

// Crawl fetches pages starting from seeds until limit documents have been
// emitted or the frontier is exhausted. A limit <= 0 means no limit.
// Documents are returned in ID order. If ctx is canceled the documents
// emitted so far are returned along with the context error.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, limit int) ([]*scam.Document, error) {
	var mu sync.Mutex
	var docs []*scam.Document
	err := c.run(ctx, seeds, limit, func(doc *scam.Document) {
		mu.Lock()
		defer mu.Unlock()
		docs = append(docs, doc)
	})

	slices.SortFunc(docs, func(a, b *scam.Document) int { return a.ID - b.ID })
	return docs, err
}

// CrawlInto is like Crawl but fills docs, stopping once every slot is used.
// Returns the number of slots filled; they are docs[:n] in ID order.
func (c *Crawler) CrawlInto(ctx context.Context, seeds []string, docs []*scam.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	var n atomic.Int64
	err := c.run(ctx, seeds, len(docs), func(doc *scam.Document) {
		// IDs are reserved in [1, len(docs)], so each slot has one writer.
		docs[doc.ID-1] = doc
		n.Add(1)
	})
	return int(n.Load()), err
}

// run drives the fetch loop, calling emit once per document.
// emit may be called concurrently.
func (c *Crawler) run(ctx context.Context, seeds []string, limit int, emit func(*scam.Document)) error {
	if c.Fetcher == nil {
		return scam.Errorf(scam.EINVALID, "crawler fetcher required")
	}

	frontier, err := c.newFrontier(seeds)
	if err != nil {
		return err
	}

	logger := c.logger().With("crawl", uuid.NewString())
	logger.Info("crawl started",
		"seeds", len(seeds),
		"limit", limit,
		"concurrency", c.concurrency(),
	)

	var (
		begin    = time.Now()
		emitted  atomic.Int64 // IDs reserved, may overshoot limit
		inflight atomic.Int64 // workers holding or about to hold a URL
		failed   atomic.Int64
	)

	full := func() bool {
		return limit > 0 && emitted.Load() >= int64(limit)
	}
	reserve := func() (int, bool) {
		id := emitted.Add(1)
		if limit > 0 && id > int64(limit) {
			return 0, false
		}
		return int(id), true
	}

	w := &worker{
		crawler:  c,
		frontier: frontier,
		logger:   logger,
		reserve:  reserve,
		emit:     emit,
		failed:   &failed,
	}

	g, gctx := errgroup.WithContext(ctx)
	for range c.concurrency() {
		g.Go(func() error {
			for !full() {
				if gctx.Err() != nil {
					return nil
				}

				// Count ourselves in flight before popping so that an idle
				// worker never sees zero in-flight while we hold a URL.
				inflight.Add(1)
				url, ok := frontier.Pop()
				if !ok {
					if inflight.Add(-1) == 0 && frontier.Empty() {
						return nil
					}
					if !sleep(gctx, c.pollInterval()) {
						return nil
					}
					continue
				}

				err := w.visit(gctx, url)
				inflight.Add(-1)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	count := emitted.Load()
	if limit > 0 {
		count = min(count, int64(limit))
	}
	logger.Info("crawl finished",
		"documents", count,
		"failed", failed.Load(),
		"remaining", frontier.Len(),
		"duration", time.Since(begin),
		"err", err,
	)
	return err
}

// newFrontier returns the configured frontier with seeds pushed at the
// highest priority, or a new Mercator seeded the same way.
func (c *Crawler) newFrontier(seeds []string) (scam.URLFrontier, error) {
	if c.Frontier != nil {
		for _, url := range seeds {
			if err := c.Frontier.Push(url, 0); err != nil {
				return nil, fmt.Errorf("seed %s: %w", url, err)
			}
		}
		return c.Frontier, nil
	}

	links := make([]scam.Link, 0, len(seeds))
	for _, url := range seeds {
		links = append(links, scam.Link{URL: url, Priority: 0})
	}
	return NewMercatorWithSeeds(links, c.priorityDepth(), c.backWidth())
}

// worker holds the per-crawl state shared by every fetcher goroutine.
type worker struct {
	crawler  *Crawler
	frontier scam.URLFrontier
	logger   *slog.Logger
	reserve  func() (int, bool)
	emit     func(*scam.Document)
	failed   *atomic.Int64
}

// visit fetches url, pushes its links and emits a document.
// Fetch and conversion failures are logged and counted, not returned;
// only frontier errors abort the crawl.
func (w *worker) visit(ctx context.Context, url string) error {
	c := w.crawler

	content, err := FetchWithRetry(ctx, url, c.Fetcher.Fetch, w.logger, c.retryDelays())
	if err != nil {
		w.failed.Add(1)
		w.logger.Warn("fetch failed", "url", url, "err", err)
		return nil
	}

	if c.Links != nil {
		links, err := c.Links.ExtractLinks(content, url)
		if err != nil {
			w.logger.Debug("link extraction failed", "url", url, "err", err)
		}
		for _, link := range links {
			if !c.Filter.Match(link.URL) {
				continue
			}
			priority := min(max(link.Priority, 0), c.priorityDepth()-1)
			if err := w.frontier.Push(link.URL, priority); err != nil {
				return fmt.Errorf("push %s: %w", link.URL, err)
			}
		}
	}

	var title string
	if c.Extractor != nil {
		// Pages the extractor cannot handle are kept whole
		result, err := c.Extractor.Extract(content)
		switch {
		case err != nil:
			w.logger.Debug("extract failed", "url", url, "err", err)
		case result.ContentHTML != "":
			content = result.ContentHTML
			title = result.Title
		}
	}

	if c.Converter != nil {
		converted, err := c.Converter.Convert(content)
		if err != nil {
			w.failed.Add(1)
			w.logger.Warn("convert failed", "url", url, "err", err)
			return nil
		}
		content = converted
	}

	id, ok := w.reserve()
	if !ok {
		return nil
	}

	doc := &scam.Document{
		URL:         url,
		Title:       title,
		Content:     content,
		ContentHash: computeHash(content),
		ID:          id,
	}
	if c.Documents != nil {
		if err := c.Documents.CreateDocument(ctx, doc); err != nil {
			w.logger.Warn("document write failed", "url", url, "id", id, "err", err)
		}
	}
	w.emit(doc)
	return nil
}

// sleep waits for d or until ctx is done. Returns false if ctx is done.
func sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) concurrency() int {
	if c.Concurrency <= 0 {
		return defaultConcurrency
	}
	return c.Concurrency
}

func (c *Crawler) priorityDepth() int {
	if c.PriorityDepth <= 0 {
		return defaultPriorityDepth
	}
	return c.PriorityDepth
}

func (c *Crawler) backWidth() int {
	if c.BackWidth <= 0 {
		return c.concurrency()
	}
	return c.BackWidth
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return c.RetryDelays
}

func (c *Crawler) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return defaultPollInterval
	}
	return c.PollInterval
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// ComputeHash computes a hash of the content using xxhash.
// This is the exported version for use in CLI commands.
func ComputeHash(content string) string {
	return computeHash(content)
}
