package main

import (
	"fmt"

	"github.com/fwojciec/ogmeta"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ogmeta.Errorf(ogmeta.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.ID); err != nil {
		if ogmeta.ErrorCode(err) == ogmeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: snapshot %q not found. Use 'ogmeta history' to see saved snapshots.\n", c.ID)
			return err
		}
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.ID)
	return nil
}
