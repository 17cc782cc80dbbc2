package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/ogmeta"
)

var _ ogmeta.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ogmeta.Fetcher.
//
// When FetchFn is nil, Fetch serves Pages by URL and fails with a 404
// *ogmeta.ResponseError for any other URL. A nil CloseFn closes cleanly.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error

	Pages map[string]string
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.FetchFn != nil {
		return f.FetchFn(ctx, url)
	}
	if html, ok := f.Pages[url]; ok {
		return html, nil
	}
	return "", &ogmeta.ResponseError{URL: url, StatusCode: http.StatusNotFound}
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
