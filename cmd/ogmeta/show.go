package main

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	snapshot, err := deps.Snapshots.FindSnapshotByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON && !c.selected() {
		if err := writeJSON(deps.Stdout, snapshot); err != nil {
			return fail(deps, err)
		}
		return nil
	}

	if err := c.write(deps.Stdout, snapshot.Metadata); err != nil {
		return fail(deps, err)
	}
	return nil
}
