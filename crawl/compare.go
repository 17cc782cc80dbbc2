package crawl

import "github.com/fwojciec/ogmeta"

// NeedsRender reports whether a page fetched over plain HTTP should be
// rendered in a browser before its metadata is trusted: pages without
// any Open Graph tags often set them from client-side code.
func NeedsRender(md *ogmeta.Metadata) bool {
	return len(md.WithPrefix(ogmeta.OpenGraphPrefix)) == 0
}

// PreferRendered reports whether metadata from the rendered page should
// replace the metadata from the plain HTTP fetch. The rendered page wins
// when it adds Open Graph tags or carries more tags overall.
func PreferRendered(fetched, rendered *ogmeta.Metadata) bool {
	if rendered.Len() == 0 {
		return false
	}
	if NeedsRender(fetched) && !NeedsRender(rendered) {
		return true
	}
	return rendered.Len() > fetched.Len()
}
