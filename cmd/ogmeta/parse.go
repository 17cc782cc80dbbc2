package main

import (
	"io"
	"os"

	"github.com/fwojciec/ogmeta"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := c.read(deps.Stdin)
	if err != nil {
		return fail(deps, err)
	}

	md := deps.Parser.Parse(html)
	if err := c.write(deps.Stdout, md); err != nil {
		return fail(deps, err)
	}
	return nil
}

func (c *ParseCmd) read(stdin io.Reader) (string, error) {
	if c.File == "" || c.File == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.File)
	if os.IsNotExist(err) {
		return "", ogmeta.Errorf(ogmeta.ENOTFOUND, "file %q not found", c.File)
	}
	return string(b), err
}
