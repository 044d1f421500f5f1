package scam

import "context"

// Fetcher retrieves page content from URLs.
type Fetcher interface {
	// Fetch retrieves the content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (content string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
