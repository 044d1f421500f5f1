package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/bloom"
	"github.com/fwojciec/scam/crawl"
	"github.com/fwojciec/scam/readability"
	"github.com/fwojciec/scam/trafilatura"
)

// bloomFalsePositiveRate is the target false positive rate for --bloom.
const bloomFalsePositiveRate = 0.001

// minBloomCapacity sizes the filter when the crawl has no limit.
const minBloomCapacity = 100_000

// newCrawler builds a crawler for the flags. The frontier is left to the
// crawler unless a non-default one is requested.
func (f *FrontierFlags) newCrawler(deps *Dependencies, links scam.LinkSelector) (*crawl.Crawler, error) {
	filter, err := scam.NewURLFilter(f.Include, f.Exclude)
	if err != nil {
		return nil, err
	}

	c := &crawl.Crawler{
		Fetcher:       deps.Fetcher,
		Links:         links,
		Filter:        filter,
		Extractor:     newExtractor(f.Extract),
		Logger:        deps.Logger,
		Concurrency:   f.Concurrency,
		PriorityDepth: f.Depth,
		BackWidth:     f.Width,
	}

	if !f.FIFO && !f.Bloom {
		return c, nil
	}

	var seen scam.SeenSet = crawl.NewExactSet()
	if f.Bloom {
		// Discovered links outnumber fetched pages, so size well past the limit
		seen = bloom.NewFilter(uint(max(f.Limit*50, minBloomCapacity)), bloomFalsePositiveRate)
	}

	if f.FIFO {
		c.Frontier = crawl.FIFO{Frontier: crawl.NewFrontierWithSeen(seen)}
		return c, nil
	}

	width := f.Width
	if width <= 0 {
		width = f.Concurrency
	}
	m, err := crawl.NewMercator(f.Depth, width, crawl.WithSeenSet(seen))
	if err != nil {
		return nil, err
	}
	c.Frontier = m
	return c, nil
}

// newExtractor returns the extractor named by --extract, or nil.
func newExtractor(name string) scam.Extractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	default:
		return nil
	}
}

// expandSeeds appends the sitemap URLs of each seed when --sitemap is set.
// Duplicates are left for the frontier to drop.
func (f *FrontierFlags) expandSeeds(deps *Dependencies, seeds []string) ([]string, error) {
	if !f.Sitemap {
		return seeds, nil
	}

	filter, err := scam.NewURLFilter(f.Include, f.Exclude)
	if err != nil {
		return nil, err
	}

	expanded := slices.Clone(seeds)
	for _, seed := range seeds {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, seed, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", seed, err)
		}
		deps.Logger.Info("sitemap", "seed", seed, "urls", len(urls))
		expanded = append(expanded, urls...)
	}
	return expanded, nil
}
