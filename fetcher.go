package ogmeta

import "context"

// Fetcher retrieves a decoded HTML document from a URL.
type Fetcher interface {
	// Fetch returns the document at url as text.
	// Returns a *ResponseError for non-2xx responses and an EENCODING
	// error when the body cannot be decoded.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// FetchMetadata fetches url once and parses the result.
// Fetch errors are returned unchanged; parsing never fails.
func FetchMetadata(ctx context.Context, fetcher Fetcher, parser Parser, url string) (*Metadata, error) {
	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parser.Parse(html), nil
}
