package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/mock"
	ogmetaslog "github.com/fwojciec/ogmeta/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs the site and number of pages found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *ogmeta.URLFilter) ([]string, error) {
				return []string{baseURL + "/", baseURL + "/about"}, nil
			},
		}
		filter, err := ogmeta.NewURLFilter([]string{"/about$"}, nil)
		require.NoError(t, err)

		svc := ogmetaslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", filter)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, `msg="discover pages"`)
		assert.Contains(t, output, "site=https://example.com")
		assert.Contains(t, output, "pages=2")
		assert.Contains(t, output, "filtered=true")
		assert.NotContains(t, output, "err=")
	})

	t.Run("warns with the error code when sitemaps cannot be read", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *ogmeta.URLFilter) ([]string, error) {
				return nil, &ogmeta.ResponseError{URL: baseURL + "/sitemap.xml", StatusCode: 503}
			},
		}

		svc := ogmetaslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "pages=0")
		assert.Contains(t, output, "filtered=false")
		assert.Contains(t, output, "code="+ogmeta.ErrorCode(err))
		assert.Contains(t, output, "unexpected status code 503")
	})
}
