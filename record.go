package scam

import (
	"context"
	"time"
)

// Crawl records one run of the crawl driver.
type Crawl struct {
	ID        string    `json:"id"`
	Seeds     []string  `json:"seeds"`
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if len(c.Seeds) == 0 {
		return Errorf(EINVALID, "crawl seeds required")
	}
	return nil
}

// CrawlService manages crawl records.
type CrawlService interface {
	// CreateCrawl assigns an ID and start time and stores the crawl.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FindCrawlByID returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// LatestCrawl returns the most recently started crawl,
	// or ENOTFOUND if there are none.
	LatestCrawl(ctx context.Context) (*Crawl, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	CrawlID *string
	URL     *string

	Limit  int
	Offset int
}

// DocumentService stores documents emitted by a crawl.
type DocumentService interface {
	DocumentWriter

	// FindDocuments returns matching documents in ID order.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}
