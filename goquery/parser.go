// Package goquery provides a DOM-based implementation of ogmeta.Parser.
//
// Unlike ogmeta.MetaTagParser it builds a full HTML tree, so it decodes
// character references, matches tag and attribute names case-insensitively
// and follows the HTML parser's recovery rules for malformed markup. It is
// useful for cross-checking the scanner on real pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ogmeta"
)

// Ensure Parser implements ogmeta.Parser at compile time.
var _ ogmeta.Parser = (*Parser)(nil)

// Parser extracts metadata by walking <meta> elements of the parsed DOM.
type Parser struct{}

// NewParser creates a new DOM-based Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the metadata declared by the document's <meta> elements.
// An element contributes when it has a non-empty property or name
// attribute and a content attribute; later elements overwrite earlier ones.
func (p *Parser) Parse(html string) *ogmeta.Metadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ogmeta.NewMetadata(nil)
	}

	return ogmeta.Aggregate(func(yield func(ogmeta.Pair, bool) bool) {
		doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			return yield(elementPair(sel))
		})
	})
}

// elementPair reads the key from the first property or name attribute in
// source order and the value from content.
func elementPair(sel *goquery.Selection) (ogmeta.Pair, bool) {
	content, ok := sel.Attr("content")
	if !ok {
		return ogmeta.Pair{}, false
	}
	for _, attr := range sel.Nodes[0].Attr {
		if (attr.Key == "property" || attr.Key == "name") && attr.Val != "" {
			return ogmeta.Pair{Key: attr.Val, Value: content}, true
		}
	}
	return ogmeta.Pair{}, false
}
