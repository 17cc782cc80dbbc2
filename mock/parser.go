package mock

import "github.com/fwojciec/ogmeta"

var _ ogmeta.Parser = (*Parser)(nil)

// Parser is a mock implementation of ogmeta.Parser.
type Parser struct {
	ParseFn func(html string) *ogmeta.Metadata
}

func (p *Parser) Parse(html string) *ogmeta.Metadata {
	return p.ParseFn(html)
}
