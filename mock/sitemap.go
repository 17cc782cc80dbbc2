package mock

import (
	"context"

	"github.com/fwojciec/ogmeta"
)

var _ ogmeta.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of ogmeta.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *ogmeta.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ogmeta.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
