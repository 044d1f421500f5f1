package mock

import (
	"context"

	"github.com/fwojciec/scam"
)

var _ scam.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scam.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *scam.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scam.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
