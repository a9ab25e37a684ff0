package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/qbridge/internal/platform"
	"github.com/roach88/qbridge/internal/result"
)

// ErrRunNotFound is reported by GetRun for unknown IDs.
var ErrRunNotFound = errors.New("store: run not found")

// Run is one recorded circuit execution.
type Run struct {
	ID          string
	Platform    platform.Platform
	Shots       int
	Fingerprint string
	Source      string
	Adapted     string
	Result      *result.Result
	CreatedAt   time.Time
}

// NewRunID generates a time-ordered run identifier (UUIDv7), so
// lexicographic ID order roughly matches creation order.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SaveRun inserts a run record. The result is stored as canonical JSON.
// Duplicate IDs are rejected, not overwritten: history is append-only.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	counts, err := run.Result.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, platform, shots, fingerprint, source, adapted, counts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		string(run.Platform),
		run.Shots,
		run.Fingerprint,
		run.Source,
		run.Adapted,
		string(counts),
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, platform, shots, fingerprint, source, adapted, counts, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, platform, shots, fingerprint, source, adapted, counts, created_at
		FROM runs
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get run: %w", err)
		}
		return nil, ErrRunNotFound
	}
	run, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var platformName, counts, createdAt string
	if err := rows.Scan(&run.ID, &platformName, &run.Shots, &run.Fingerprint,
		&run.Source, &run.Adapted, &counts, &createdAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.Platform = platform.Platform(platformName)

	res, err := result.FromCanonicalJSON([]byte(counts))
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	run.Result = res

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	run.CreatedAt = ts

	return run, nil
}
