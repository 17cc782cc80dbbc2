package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	md := deps.Parser.Parse(html)

	if c.Save {
		snapshot := &ogmeta.Snapshot{
			URL:       c.URL,
			Metadata:  md,
			HTMLHash:  crawl.HashHTML(html),
			Rendered:  c.Render,
			FetchedAt: time.Now(),
		}
		if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stderr, "Saved snapshot %s\n", snapshot.ID)
	}

	if err := c.write(deps.Stdout, md); err != nil {
		return fail(deps, err)
	}
	return nil
}
