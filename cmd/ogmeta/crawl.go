package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/ogmeta"
	"github.com/fwojciec/ogmeta/crawl"
)

// pageJSON is one line of "crawl --json" output.
type pageJSON struct {
	URL      string           `json:"url"`
	Metadata *ogmeta.Metadata `json:"metadata,omitempty"`
	Rendered bool             `json:"rendered,omitempty"`
	Snapshot string           `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	filter, err := ogmeta.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		return fail(deps, err)
	}

	deps.Collector.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Found %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	results, err := deps.Collector.CollectSite(deps.Ctx, c.URL, filter)
	if err != nil && len(results) == 0 {
		if deps.Export != nil {
			_ = deps.Export.Abort()
		}
		return fail(deps, err)
	}

	saved, failed, storeErr := c.store(deps, results, err != nil)
	if storeErr != nil {
		return fail(deps, storeErr)
	}

	fmt.Fprintf(deps.Stderr, "Collected %d pages (%d failed", len(results)-failed, failed)
	if c.Save {
		fmt.Fprintf(deps.Stderr, ", %d saved", saved)
	}
	fmt.Fprintln(deps.Stderr, ")")

	if err != nil {
		return fail(deps, err)
	}
	return nil
}

// store prints each result and persists the successful ones to the
// snapshot database and export directory as requested. The export
// replaces the previous one only when the collection completed and at
// least one page succeeded; otherwise it is discarded.
func (c *CrawlCmd) store(deps *Dependencies, results []*crawl.Result, interrupted bool) (saved, failed int, err error) {
	if deps.Export != nil {
		defer func() {
			if err != nil {
				_ = deps.Export.Abort()
			}
		}()
	}

	for _, r := range results {
		page := pageJSON{URL: r.URL, Metadata: r.Metadata, Rendered: r.Rendered}
		if r.Err != nil {
			failed++
			page.Error = ogmeta.ErrorMessage(r.Err)
			c.print(deps, page)
			continue
		}

		snapshot := &ogmeta.Snapshot{
			URL:       r.URL,
			Metadata:  r.Metadata,
			HTMLHash:  r.HTMLHash,
			Rendered:  r.Rendered,
			FetchedAt: time.Now(),
		}
		if c.Save {
			if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
				return saved, failed, err
			}
			page.Snapshot = snapshot.ID
			saved++
		}
		if deps.Export != nil {
			if err := deps.Export.Save(deps.Ctx, snapshot); err != nil {
				return saved, failed, err
			}
		}
		c.print(deps, page)
	}

	if deps.Export != nil {
		if interrupted || len(results)-failed == 0 {
			fmt.Fprintf(deps.Stderr, "Kept previous export in %s\n", c.Out)
			return saved, failed, deps.Export.Abort()
		}
		if err := deps.Export.Commit(); err != nil {
			return saved, failed, err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d pages to %s\n", len(results)-failed, c.Out)
	}
	return saved, failed, nil
}

func (c *CrawlCmd) print(deps *Dependencies, page pageJSON) {
	if c.JSON {
		b, err := json.Marshal(page)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", page.URL, err)
			return
		}
		fmt.Fprintln(deps.Stdout, string(b))
		return
	}
	if page.Error != "" {
		return
	}
	fmt.Fprintln(deps.Stdout, page.URL)
	for _, p := range pairsOf(page.Metadata) {
		fmt.Fprintf(deps.Stdout, "  %s\t%s\n", p.Key, p.Value)
	}
}
