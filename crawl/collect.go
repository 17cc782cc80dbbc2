// Package crawl collects metadata from many pages at once. It
// coordinates sitemap discovery, rate-limited concurrent fetching with
// retries, and an optional browser-rendering fallback.
package crawl

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once when
// Collector.Concurrency is not set.
const DefaultConcurrency = 5

// dedupeFalsePositiveRate sizes the Bloom filter used to drop repeated URLs.
const dedupeFalsePositiveRate = 0.01

// Collector fetches pages and extracts their metadata.
type Collector struct {
	Sitemaps    ogmeta.SitemapService
	Fetcher     ogmeta.Fetcher
	Renderer    ogmeta.Fetcher // optional; re-fetches pages without og: tags
	Parser      ogmeta.Parser  // defaults to ogmeta.MetaTagParser
	RateLimiter ogmeta.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Progress    ProgressFunc
	Logger      *slog.Logger
}

// Result holds the outcome of collecting a single URL.
type Result struct {
	URL      string
	Metadata *ogmeta.Metadata
	HTMLHash string
	Rendered bool
	Err      error
}

// ProgressEvent reports progress during a collection.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// CollectSite discovers the pages of the site at baseURL from its
// sitemaps and collects each one. A site without sitemap entries is
// collected as the single page baseURL.
func (c *Collector) CollectSite(ctx context.Context, baseURL string, filter *ogmeta.URLFilter) ([]*Result, error) {
	if c.Sitemaps == nil {
		return c.Collect(ctx, []string{baseURL})
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		urls = []string{baseURL}
	}
	return c.Collect(ctx, urls)
}

// Collect fetches every distinct URL in urls and returns one Result per
// URL in input order. Failures of individual pages are reported in
// Result.Err and never abort the collection. The returned error is
// non-nil only when ctx ends first; results gathered so far are still
// returned alongside it.
func (c *Collector) Collect(ctx context.Context, urls []string) ([]*Result, error) {
	if c.Fetcher == nil {
		return nil, ogmeta.Errorf(ogmeta.EINVALID, "collector requires a fetcher")
	}

	seen := bloom.NewURLSet(uint(len(urls)), dedupeFalsePositiveRate)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen.TestAndAdd(u) {
			continue
		}
		unique = append(unique, u)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	report := c.reporter(len(unique))
	report(ProgressEvent{Type: ProgressStarted})

	results := make([]*Result, len(unique))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range unique {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := c.collectURL(ctx, u)
			results[i] = r
			if r.Err != nil {
				report(ProgressEvent{Type: ProgressFailed, URL: u, Error: r.Err})
			} else {
				report(ProgressEvent{Type: ProgressCompleted, URL: u})
			}
			return nil
		})
	}
	_ = g.Wait()

	report(ProgressEvent{Type: ProgressFinished})

	if err := ctx.Err(); err != nil {
		out := results[:0]
		for _, r := range results {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, err
	}
	return results, nil
}

// reporter wraps c.Progress so that events are delivered one at a time
// with running totals filled in.
func (c *Collector) reporter(total int) func(ProgressEvent) {
	var (
		mu        sync.Mutex
		completed int
	)
	return func(event ProgressEvent) {
		if c.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		switch event.Type {
		case ProgressCompleted, ProgressFailed:
			completed++
		case ProgressFinished:
			completed = total
		}
		event.Completed = completed
		event.Total = total
		c.Progress(event)
	}
}

// collectURL fetches one page, retrying transient failures, and falls
// back to the renderer when the page looks client-rendered.
func (c *Collector) collectURL(ctx context.Context, url string) *Result {
	result := &Result{URL: url}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetry(ctx, url, c.limited(c.Fetcher), delays, c.logRetry)
	if err != nil {
		result.Err = err
		return result
	}

	parser := c.parser()
	result.Metadata = parser.Parse(html)
	result.HTMLHash = HashHTML(html)

	if c.Renderer == nil || !NeedsRender(result.Metadata) {
		return result
	}

	rendered, err := c.limited(c.Renderer)(ctx, url)
	if err != nil {
		c.logger().Warn("render fallback failed", "url", url, "error", err)
		return result
	}
	md := parser.Parse(rendered)
	if PreferRendered(result.Metadata, md) {
		result.Metadata = md
		result.HTMLHash = HashHTML(rendered)
		result.Rendered = true
	}
	return result
}

// limited returns f.Fetch gated by the rate limiter, if one is set.
func (c *Collector) limited(f ogmeta.Fetcher) FetchFunc {
	return func(ctx context.Context, url string) (string, error) {
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, hostOf(url)); err != nil {
				return "", err
			}
		}
		return f.Fetch(ctx, url)
	}
}

func (c *Collector) logRetry(url string, attempt int, err error) {
	c.logger().Info("retrying fetch", "url", url, "attempt", attempt, "error", err)
}

func (c *Collector) parser() ogmeta.Parser {
	if c.Parser == nil {
		return ogmeta.MetaTagParser{}
	}
	return c.Parser
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// HashHTML returns a short hex digest of html for change detection.
func HashHTML(html string) string {
	return strconv.FormatUint(xxhash.Sum64String(html), 16)
}
