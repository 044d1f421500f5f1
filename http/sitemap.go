package http

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/scam"
)

var _ scam.SitemapService = (*SitemapService)(nil)

// SitemapService discovers seed URLs from a site's sitemaps.
// Sitemaps are located through the Sitemap directives in robots.txt,
// falling back to /sitemap.xml.
type SitemapService struct {
	fetcher scam.Fetcher
}

// NewSitemapService creates a SitemapService that downloads robots.txt
// and sitemaps through fetcher. If fetcher is nil a default Fetcher is used.
func NewSitemapService(fetcher scam.Fetcher) *SitemapService {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs returns the URLs listed in the sitemaps of baseURL's host,
// deduplicated and in document order. An empty slice is returned when the
// site has no sitemap.
//
// When baseURL has a non-root path such as https://example.com/docs/,
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scam.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, scam.Errorf(scam.EINVALID, "invalid base URL: %s", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	if prefix != "" {
		prefix += "/"
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		service:  s,
		visited:  make(map[string]bool),
		seen:     make(map[string]bool),
		prefix:   prefix,
		filter:   filter,
		found:    []string{},
		maxDepth: maxSitemapDepth,
	}
	for _, sitemap := range sitemaps {
		if err := w.walk(ctx, sitemap, 0); err != nil {
			return nil, err
		}
	}
	return w.found, nil
}

// maxSitemapDepth bounds sitemap index nesting.
const maxSitemapDepth = 5

// locateSitemaps reads Sitemap directives from robots.txt, or returns
// /sitemap.xml if it exists. Missing files are not errors.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots, err := s.fetcher.Fetch(ctx, root.JoinPath("robots.txt").String())
	if err == nil {
		if sitemaps := parseRobots(robots); len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.JoinPath("sitemap.xml").String()
	return []string{fallback}, nil
}

// parseRobots extracts Sitemap directives from a robots.txt body.
func parseRobots(body string) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	return sitemaps
}

// sitemapWalk holds the state of one DiscoverURLs call.
type sitemapWalk struct {
	service  *SitemapService
	visited  map[string]bool // sitemap documents
	seen     map[string]bool // page URLs
	prefix   string
	filter   *scam.URLFilter
	found    []string
	maxDepth int
}

// walk fetches one sitemap document and either recurses into a
// sitemapindex or collects the locations of a urlset. The fallback
// /sitemap.xml is allowed to be missing.
func (w *sitemapWalk) walk(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || depth > w.maxDepth {
		return nil
	}
	w.visited[sitemapURL] = true

	body, err := w.service.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if depth == 0 {
			return nil
		}
		return fmt.Errorf("fetch sitemap %s: %w", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return fmt.Errorf("parse sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("parse sitemap %s: empty document", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locations(root, "sitemap") {
			if err := w.walk(ctx, loc, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locations(root, "url") {
		w.collect(loc)
	}
	return nil
}

func (w *sitemapWalk) collect(loc string) {
	if w.seen[loc] {
		return
	}
	w.seen[loc] = true

	if w.prefix != "" && !underPath(loc, w.prefix) {
		return
	}
	if !w.filter.Match(loc) {
		return
	}
	w.found = append(w.found, loc)
}

// locations returns the trimmed <loc> text of each child element named tag.
func locations(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			locs = append(locs, text)
		}
	}
	return locs
}

// underPath reports whether rawURL's path is prefix or lies beneath it.
// prefix ends with a slash, so /docs/ matches /docs and /docs/intro
// but not /documentation.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(u.Path, prefix)
}
