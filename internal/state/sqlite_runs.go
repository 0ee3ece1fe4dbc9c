package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const runColumns = `id, root, locale, files, instances, diagnostics, duration_ms, started_at`

// RecordRun stores run and its pattern counts in one transaction. A run
// without an ID gets a new one; a zero StartedAt is set to now.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *Run) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	s.logger.Debug("recording run",
		slog.String("id", run.ID),
		slog.Int("instances", run.Instances),
		slog.Int("patterns", len(run.Patterns)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Locale, run.Files, run.Instances, run.Diagnostics,
		run.Duration.Milliseconds(), run.StartedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, pc := range run.Patterns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_patterns (run_id, pattern_id, count) VALUES (?, ?, ?)`,
			run.ID, pc.PatternID, pc.Count,
		); err != nil {
			return fmt.Errorf("failed to insert pattern count %s: %w", pc.PatternID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves the run whose ID starts with idPrefix. A prefix matching
// more than one run is an error.
func (s *SQLiteStore) GetRun(ctx context.Context, idPrefix string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if idPrefix == "" {
		return nil, fmt.Errorf("%w: empty run ID", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		len(idPrefix), idPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idPrefix)
	case 1:
	default:
		return nil, fmt.Errorf("run ID %q is ambiguous", idPrefix)
	}

	run := runs[0]
	if run.Patterns, err = s.patternCounts(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatestRun retrieves the most recent run.
func (s *SQLiteStore) GetLatestRun(ctx context.Context) (*Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil // No runs recorded yet
	}

	run := runs[0]
	if run.Patterns, err = s.patternCounts(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit, without
// their pattern counts. A limit of zero or less lists every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteStore) patternCounts(ctx context.Context, runID string) ([]PatternCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_id, count FROM run_patterns WHERE run_id = ? ORDER BY pattern_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []PatternCount
	for rows.Next() {
		var pc PatternCount
		if err := rows.Scan(&pc.PatternID, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan pattern count: %w", err)
		}
		counts = append(counts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get pattern counts: %w", err)
	}
	return counts, nil
}

// scanRuns reads and closes rows selected with runColumns.
func scanRuns(rows *sql.Rows) ([]*Run, error) {
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var durationMS, startedAt int64
		if err := rows.Scan(&run.ID, &run.Root, &run.Locale, &run.Files, &run.Instances,
			&run.Diagnostics, &durationMS, &startedAt); err != nil {
			return nil, err
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.StartedAt = time.Unix(0, startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// IsNotFound reports whether err means no run matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound)
}
