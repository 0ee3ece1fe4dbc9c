// Package state records detection runs in a SQLite history database.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound is returned when no recorded run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded detection run.
type Run struct {
	ID          string
	Root        string // project root the run was started from
	Locale      string
	Files       int
	Instances   int
	Diagnostics int
	Duration    time.Duration
	StartedAt   time.Time

	// Patterns counts instances per pattern ID, ordered by ID.
	Patterns []PatternCount
}

// PatternCount is the number of instances of one pattern in a run.
type PatternCount struct {
	PatternID string
	Count     int
}

// HistoryStore persists detection runs.
type HistoryStore interface {
	// RecordRun stores a run with its pattern counts.
	RecordRun(ctx context.Context, run *Run) error
	// GetRun returns the run whose ID starts with idPrefix.
	GetRun(ctx context.Context, idPrefix string) (*Run, error)
	// GetLatestRun returns the most recent run, or nil when none is recorded.
	GetLatestRun(ctx context.Context) (*Run, error)
	// ListRuns returns up to limit runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	// Close releases the database.
	Close() error
}

var _ HistoryStore = (*SQLiteStore)(nil)
