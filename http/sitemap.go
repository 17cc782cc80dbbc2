package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/ogmeta"
)

// maxIndexDepth bounds how deeply nested sitemap indexes are followed.
const maxIndexDepth = 3

// Ensure SitemapService implements ogmeta.SitemapService.
var _ ogmeta.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the deduplicated page URLs listed in the site's
// sitemaps, in sitemap order. Returns an empty slice when the site has no
// sitemap.
//
// A baseURL with a path (https://example.com/blog) restricts results to
// URLs under that path.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ogmeta.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, ogmeta.Errorf(ogmeta.EINVALID, "invalid base URL %q", baseURL)
	}
	prefix := strings.TrimSuffix(base.Path, "/")

	sitemaps, err := s.locateSitemaps(ctx, &url.URL{Scheme: base.Scheme, Host: base.Host})
	if err != nil {
		return nil, err
	}

	d := &discovery{svc: s, visited: make(map[string]bool), seen: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := d.walk(ctx, sm, 0); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(d.urls))
	for _, u := range d.urls {
		if prefix != "" && !underPath(u, prefix) {
			continue
		}
		if !filter.Match(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// discovery accumulates page URLs across one DiscoverURLs call.
type discovery struct {
	svc     *SitemapService
	visited map[string]bool
	seen    map[string]bool
	urls    []string
}

func (d *discovery) walk(ctx context.Context, sitemapURL string, depth int) error {
	if d.visited[sitemapURL] || depth > maxIndexDepth {
		return nil
	}
	d.visited[sitemapURL] = true

	body, err := d.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("parsing sitemap %s: no root element", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locs(root, "sitemap") {
			if err := d.walk(ctx, loc, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locs(root, "url") {
		if !d.seen[loc] {
			d.seen[loc] = true
			d.urls = append(d.urls, loc)
		}
	}
	return nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// locateSitemaps reads Sitemap: lines from robots.txt, falling back to
// /sitemap.xml when robots.txt is missing or lists none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		sitemaps, err := sitemapsFromRobots(body)
		body.Close()
		if err != nil {
			return nil, err
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func sitemapsFromRobots(r io.Reader) ([]string, error) {
	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if v := strings.TrimSpace(line[len(directive):]); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// underPath reports whether rawURL's path is prefix or lies below it.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &ogmeta.ResponseError{URL: target, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
