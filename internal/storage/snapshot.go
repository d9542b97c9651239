// Package storage persists scrape results: atomic JSON files for the
// published documents, plus optional MongoDB and SQLite sinks.
package storage

import (
	"context"
	"errors"
	"time"

	"timetable-go/internal/timetable"
)

// Snapshot is one department's document from one scrape run.
type Snapshot struct {
	RunID      string
	Department string
	FetchedAt  time.Time
	Document   *timetable.Document
}

// Sink receives every successful snapshot.
type Sink interface {
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}

// ErrNoSnapshot is returned when a department has never been archived.
var ErrNoSnapshot = errors.New("storage: no snapshot")
