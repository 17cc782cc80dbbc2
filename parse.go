package ogmeta

import "iter"

// Parser extracts metadata from a decoded HTML document.
// Implementations never fail: malformed markup yields fewer keys.
type Parser interface {
	Parse(html string) *Metadata
}

// Ensure MetaTagParser implements Parser at compile time.
var _ Parser = MetaTagParser{}

// MetaTagParser is the default Parser. It scans <meta> tags directly
// without building a DOM. The zero value is ready to use and safe for
// concurrent use.
type MetaTagParser struct{}

// Parse implements Parser.
func (MetaTagParser) Parse(html string) *Metadata {
	return Parse(html)
}

// Parse extracts the metadata declared by the <meta> tags of html.
func Parse(html string) *Metadata {
	return Aggregate(Pairs(html))
}

// Pairs yields the result of ExtractPair for every tag span in html, in
// document order.
func Pairs(html string) iter.Seq2[Pair, bool] {
	return func(yield func(Pair, bool) bool) {
		for tag := range ScanTags(html) {
			if !yield(ExtractPair(tag)) {
				return
			}
		}
	}
}

// Aggregate folds pairs into Metadata, skipping entries reported as absent.
// A later pair overwrites an earlier one with the same key.
func Aggregate(pairs iter.Seq2[Pair, bool]) *Metadata {
	attrs := make(map[string]string)
	for p, ok := range pairs {
		if ok {
			attrs[p.Key] = p.Value
		}
	}
	return &Metadata{attrs: attrs}
}
