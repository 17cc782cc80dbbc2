package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ogmeta"
)

// Ensure LoggingSitemapService implements ogmeta.SitemapService.
var _ ogmeta.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs which pages a site's sitemaps yield before
// they are crawled for metadata.
type LoggingSitemapService struct {
	next   ogmeta.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next ogmeta.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. A successful lookup is
// logged with the number of pages found, and a failed one with its error
// code.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ogmeta.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"site", baseURL,
			"pages", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", ogmeta.ErrorCode(err), "err", err)
			s.logger.Warn("discover pages", attrs...)
			return
		}
		s.logger.Info("discover pages", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
