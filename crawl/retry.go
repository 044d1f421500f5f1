package crawl

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, retrying once per entry in
// delays and waiting that long before each retry. The logger, if non-nil,
// receives a debug record for each retry. Returns the last fetch error, or
// the context error if ctx is done while waiting.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := range maxAttempts {
		content, err := fetch(ctx, url)
		if err == nil {
			return content, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Debug("retry fetch",
				"url", url,
				"attempt", attempt+2,
				"err", err,
			)
		}

		if !sleep(ctx, delays[attempt]) {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}
