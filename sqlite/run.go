package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/musictechlab/ddexmap"
)

// Compile-time interface verification.
var _ ddexmap.RunService = (*RunService)(nil)

// RunService implements ddexmap.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run and its candidates in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *ddexmap.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, pages, visited, tags, replaced, cleared)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Pages, run.Visited, run.Tags, run.Replaced, run.Cleared)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ddexmap.Errorf(ddexmap.ECONFLICT, "run %s already exists", run.ID)
		}
		return err
	}

	for _, c := range run.Candidates {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO candidates (run_id, tag, url, score)
			VALUES (?, ?, ?, ?)
		`, run.ID, c.Tag, c.URL, c.Score); err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				return ddexmap.Errorf(ddexmap.ECONFLICT, "duplicate candidate for tag %q", c.Tag)
			}
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run with its candidates ordered by tag.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*ddexmap.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, pages, visited, tags, replaced, cleared
		FROM runs
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, ddexmap.Errorf(ddexmap.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, url, score
		FROM candidates
		WHERE run_id = ?
		ORDER BY tag
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c ddexmap.Candidate
		if err := rows.Scan(&c.Tag, &c.URL, &c.Score); err != nil {
			return nil, err
		}
		run.Candidates = append(run.Candidates, &c)
	}

	return run, rows.Err()
}

// FindRuns retrieves runs, most recent first. Candidates are not loaded.
func (s *RunService) FindRuns(ctx context.Context, filter ddexmap.RunFilter) ([]*ddexmap.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, finished_at, pages, visited, tags, replaced, cleared FROM runs")
	query.WriteString(" ORDER BY started_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*ddexmap.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*ddexmap.Run, error) {
	var run ddexmap.Run
	var startedAt, finishedAt string

	if err := row.Scan(&run.ID, &startedAt, &finishedAt,
		&run.Pages, &run.Visited, &run.Tags, &run.Replaced, &run.Cleared); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
