package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ogmeta"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ogmeta.SnapshotService = (*SnapshotService)(nil)

const snapshotColumns = "id, url, metadata, html_hash, rendered, fetched_at"

// SnapshotService implements ogmeta.SnapshotService using SQLite.
type SnapshotService struct {
	db  *DB
	now func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db, now: time.Now}
}

// CreateSnapshot stores a snapshot, assigning its ID and, when unset,
// its FetchedAt time.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *ogmeta.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	if snapshot.Metadata == nil {
		snapshot.Metadata = ogmeta.NewMetadata(nil)
	}
	attrs, err := json.Marshal(snapshot.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	snapshot.ID = uuid.New().String()
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = s.now()
	}
	snapshot.FetchedAt = snapshot.FetchedAt.UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.URL, string(attrs), snapshot.HTMLHash, snapshot.Rendered,
		formatTime(snapshot.FetchedAt))

	return err
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*ogmeta.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE id = ?
	`, id)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ogmeta.Errorf(ogmeta.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter ogmeta.SnapshotFilter) ([]*ogmeta.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + snapshotColumns + " FROM snapshots WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*ogmeta.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ogmeta.Errorf(ogmeta.ENOTFOUND, "snapshot not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*ogmeta.Snapshot, error) {
	var snapshot ogmeta.Snapshot
	var attrs, fetchedAt string

	if err := row.Scan(&snapshot.ID, &snapshot.URL, &attrs, &snapshot.HTMLHash,
		&snapshot.Rendered, &fetchedAt); err != nil {
		return nil, err
	}

	snapshot.Metadata = ogmeta.NewMetadata(nil)
	if err := json.Unmarshal([]byte(attrs), snapshot.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var err error
	snapshot.FetchedAt, err = parseTime(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
