package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/ogmeta"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := ogmeta.SnapshotFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'ogmeta fetch --save' to create one.")
		return nil
	}

	for _, s := range snapshots {
		rendered := ""
		if s.Rendered {
			rendered = "  rendered"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d tags%s\n",
			s.ID, s.FetchedAt.Local().Format(time.DateTime), s.URL, s.Metadata.Len(), rendered)
	}

	return nil
}
