package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"timetable-go/internal/timetable"
)

// ArchiveSchema holds one row per department per successful scrape.
const ArchiveSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	department TEXT NOT NULL,
	url TEXT NOT NULL,
	groups INTEGER NOT NULL,
	body TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_department ON snapshots(department, id);
`

// Archive appends every snapshot to a SQLite table, keeping the history the
// published files overwrite.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; also keeps ":memory:" on a single database
	db.SetMaxOpenConns(1)

	a := &Archive{db: db}
	if err := a.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Init creates the snapshots table if it doesn't exist.
func (a *Archive) Init(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, ArchiveSchema)
	return err
}

func (a *Archive) Save(ctx context.Context, snap Snapshot) error {
	body, err := json.Marshal(snap.Document)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, department, url, groups, body, fetched_at)
		VALUES (?,?,?,?,?,?)`,
		snap.RunID, snap.Department, snap.Document.SourceURL, len(snap.Document.Groups),
		string(body), snap.FetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("archive %s: %w", snap.Department, err)
	}
	return nil
}

// Latest returns the most recent snapshot of department.
func (a *Archive) Latest(ctx context.Context, department string) (*Snapshot, error) {
	var (
		snap Snapshot
		body string
		ms   int64
	)
	err := a.db.QueryRowContext(ctx, `
		SELECT run_id, department, body, fetched_at FROM snapshots
		WHERE department = ? ORDER BY id DESC LIMIT 1`, department,
	).Scan(&snap.RunID, &snap.Department, &body, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	snap.FetchedAt = time.UnixMilli(ms)
	snap.Document = &timetable.Document{}
	if err := json.Unmarshal([]byte(body), snap.Document); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Count returns the number of archived snapshots of department.
func (a *Archive) Count(ctx context.Context, department string) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE department = ?`, department).Scan(&n)
	return n, err
}

func (a *Archive) Close() error {
	return a.db.Close()
}
