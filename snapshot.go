package ogmeta

import (
	"context"
	"time"
)

// Snapshot is the metadata extracted from one URL at one point in time.
type Snapshot struct {
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url"`
	Metadata  *Metadata `json:"metadata"`
	HTMLHash  string    `json:"htmlHash"`
	Rendered  bool      `json:"rendered"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "snapshot URL required")
	}
	return nil
}

// SnapshotService represents a service for managing snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and assigns its ID.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageStore exports snapshots outside the database. Saves are staged
// until Commit; Abort discards them.
type PageStore interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Commit() error
	Abort() error
}
