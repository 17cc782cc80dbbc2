// Package rod provides an ogmeta.Fetcher that renders pages in headless
// Chrome, for sites that inject their meta tags with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/ogmeta"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed to load and render a page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ogmeta.Fetcher at compile time.
var _ ogmeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool     *browserPool
	timeout  time.Duration
	settle   time.Duration
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds how long one page may take to load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle waits up to d for the page to go idle after load, giving
// client-side code time to write its meta tags.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is replaced.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.maxPages, launchChrome)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates to url and returns the DOM serialised after load.
// The browser does not expose the response status, so unlike the HTTP
// fetcher no *ogmeta.ResponseError is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, err := f.pool.acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if f.timeout > 0 {
		page = page.Timeout(f.timeout)
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		if err := page.WaitIdle(f.settle); err != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.pool.close()
}
