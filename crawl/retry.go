package crawl

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/ogmeta"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the 1-based number of the
// upcoming attempt and the error that triggered it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed fetch is worth repeating.
// Transport failures and 5xx responses are; 4xx responses, decoding
// failures, invalid input, and cancellation are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := ogmeta.StatusCode(err); ok {
		return code >= http.StatusInternalServerError
	}
	switch ogmeta.ErrorCode(err) {
	case ogmeta.EENCODING, ogmeta.EINVALID, ogmeta.ENOTFOUND:
		return false
	}
	return true
}

// FetchWithRetry calls fetch once plus once per delay, sleeping for the
// delay between attempts, until it succeeds or fails with an error that
// is not Retryable. onRetry may be nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
