package ogmeta

import (
	"iter"
	"strings"
)

// metaOpen starts every tag span. Matching is case-sensitive, so <META ...>
// is never recognised.
const metaOpen = "<meta"

// ScanTags returns the <meta ...> elements of doc in document order.
//
// A span runs from "<meta" to the first '>' outside a single- or
// double-quoted value. An occurrence that reaches the end of doc, or meets
// a '<' outside quotes before its closing '>', is unterminated and yields
// nothing; scanning then resumes right after its "<meta" so that later
// tags are still found. The sequence may be ranged over any number of
// times and always yields the same spans.
func ScanTags(doc string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(doc); {
			k := strings.Index(doc[i:], metaOpen)
			if k < 0 {
				return
			}
			start := i + k
			end, ok := tagEnd(doc, start+len(metaOpen))
			if !ok {
				i = start + len(metaOpen)
				continue
			}
			if !yield(doc[start:end]) {
				return
			}
			i = end
		}
	}
}

// tagEnd walks doc from i and returns the offset just past the closing '>'.
func tagEnd(doc string, i int) (int, bool) {
	var quote byte
	for ; i < len(doc); i++ {
		c := doc[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i + 1, true
		case '<':
			return 0, false
		}
	}
	return 0, false
}
