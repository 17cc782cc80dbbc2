// Package http provides net/http implementations of ogmeta.Fetcher and
// ogmeta.SitemapService for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/ogmeta"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ogmeta.Fetcher at compile time.
var _ ogmeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents with plain HTTP GET requests.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	header  http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeader adds a request header sent with every fetch.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Add(key, value)
	}
}

// WithHeaders adds request headers sent with every fetch.
// Empty values are skipped.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		for k, v := range headers {
			if v != "" {
				f.header.Set(k, v)
			}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.header.Set("User-Agent", ua)
	}
}

// WithClient uses client instead of a client built from the timeout.
// The timeout still bounds each request through its context.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the document at url and decodes it to text.
// Responses outside 200-299 yield an *ogmeta.ResponseError. Bodies are
// decoded as UTF-8 unless the Content-Type header names another charset;
// undecodable bodies yield an EENCODING error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ogmeta.Errorf(ogmeta.EINVALID, "invalid URL %q: %v", url, err)
	}
	for k, vs := range f.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ogmeta.ResponseError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return decodeBody(body, resp.Header.Get("Content-Type"))
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// decodeBody converts body to text using the charset declared in
// contentType, defaulting to UTF-8. The body is never sniffed.
func decodeBody(body []byte, contentType string) (string, error) {
	label := "utf-8"
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		label = params["charset"]
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", ogmeta.Errorf(ogmeta.EENCODING, "unsupported charset %q", label)
	}

	if name == "utf-8" {
		if !utf8.Valid(body) {
			return "", ogmeta.Errorf(ogmeta.EENCODING, "response body is not valid UTF-8")
		}
		return string(body), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", ogmeta.Errorf(ogmeta.EENCODING, "decoding %s response body: %v", name, err)
	}
	return string(decoded), nil
}
