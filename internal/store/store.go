// Package store provides an SQLite-backed ledger of documentation runs.
// The ledger is history only: the generator never reads it to decide what
// to do.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doxai/doxai/internal/output"
)

// Outcome values stored per file.
const (
	OutcomeGenerated = "generated"
	OutcomeUpdated   = "updated"
	OutcomeDeleted   = "deleted"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Run is one recorded documentation run.
type Run struct {
	ID         string    `json:"id"`
	Repository string    `json:"repository"`
	PRNumber   int       `json:"pr_number"`
	Command    string    `json:"command"`
	State      string    `json:"state"`
	DryRun     bool      `json:"dry_run"`
	DocsPRURL  string    `json:"docs_pr_url,omitempty"`
	Generated  int       `json:"generated"`
	Updated    int       `json:"updated"`
	Deleted    int       `json:"deleted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// FileOutcome is the recorded result for one file of a run.
type FileOutcome struct {
	Path    string
	Outcome string
	Reason  string
}

// ListOptions filters ListRuns. Zero values match everything.
type ListOptions struct {
	Repository string
	PRNumber   int
	Limit      int
}

// Store wraps a SQLite database holding the run ledger.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures
// all required tables exist. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			repository  TEXT NOT NULL,
			pr_number   INTEGER NOT NULL,
			command     TEXT NOT NULL DEFAULT '',
			state       TEXT NOT NULL,
			dry_run     INTEGER NOT NULL DEFAULT 0,
			docs_pr_url TEXT NOT NULL DEFAULT '',
			generated   INTEGER NOT NULL DEFAULT 0,
			updated     INTEGER NOT NULL DEFAULT 0,
			deleted     INTEGER NOT NULL DEFAULT 0,
			skipped     INTEGER NOT NULL DEFAULT 0,
			failed      INTEGER NOT NULL DEFAULT 0,
			error       TEXT NOT NULL DEFAULT '',
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS runs_by_pr ON runs (repository, pr_number, started_at)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			path    TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason  TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// FromSummary converts a rendered run summary into ledger rows.
func FromSummary(s *output.RunSummary, startedAt time.Time) (Run, []FileOutcome) {
	run := Run{
		ID:         s.RunID,
		Repository: s.Repository,
		PRNumber:   s.PRNumber,
		Command:    s.Command,
		State:      s.State,
		DryRun:     s.DryRun,
		Generated:  len(s.Result.Generated),
		Updated:    len(s.Result.Updated),
		Deleted:    len(s.Result.Deleted),
		Skipped:    len(s.Result.Skipped),
		Failed:     len(s.Result.Failed),
		Error:      s.Error,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(s.Duration),
	}
	if s.DocsPR != nil {
		run.DocsPRURL = s.DocsPR.URL
	}

	var files []FileOutcome
	add := func(outcome string, paths []string) {
		for _, p := range paths {
			files = append(files, FileOutcome{Path: p, Outcome: outcome})
		}
	}
	add(OutcomeGenerated, s.Result.Generated)
	add(OutcomeUpdated, s.Result.Updated)
	add(OutcomeDeleted, s.Result.Deleted)
	for _, sk := range s.Result.Skipped {
		files = append(files, FileOutcome{Path: sk.Source, Outcome: OutcomeSkipped, Reason: sk.Reason})
	}
	for _, f := range s.Result.Failed {
		files = append(files, FileOutcome{Path: f.File, Outcome: OutcomeFailed, Reason: f.Reason})
	}
	return run, files
}

// RecordRun stores a run and its per-file outcomes in one transaction.
// Recording the same run ID again replaces the earlier entry.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileOutcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_files WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clear files: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
		 (id, repository, pr_number, command, state, dry_run, docs_pr_url,
		  generated, updated, deleted, skipped, failed, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Repository, run.PRNumber, run.Command, run.State, run.DryRun, run.DocsPRURL,
		run.Generated, run.Updated, run.Deleted, run.Skipped, run.Failed, run.Error,
		run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, f := range files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, path, outcome, reason) VALUES (?, ?, ?, ?)`,
			run.ID, f.Path, f.Outcome, f.Reason,
		); err != nil {
			return fmt.Errorf("insert file %s: %w", f.Path, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id, repository, pr_number, command, state, dry_run, docs_pr_url,
	generated, updated, deleted, skipped, failed, error, started_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started, finished int64
	err := row.Scan(&r.ID, &r.Repository, &r.PRNumber, &r.Command, &r.State, &r.DryRun, &r.DocsPRURL,
		&r.Generated, &r.Updated, &r.Deleted, &r.Skipped, &r.Failed, &r.Error, &started, &finished)
	if err != nil {
		return Run{}, err
	}
	r.StartedAt = time.Unix(0, started).UTC()
	r.FinishedAt = time.Unix(0, finished).UTC()
	return r, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1 = 1`
	var args []any
	if opts.Repository != "" {
		query += ` AND repository = ?`
		args = append(args, opts.Repository)
	}
	if opts.PRNumber != 0 {
		query += ` AND pr_number = ?`
		args = append(args, opts.PRNumber)
	}
	query += ` ORDER BY started_at DESC, id`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run and its file outcomes. It returns nil, nil, nil
// when the run does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []FileOutcome, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, outcome, reason FROM run_files WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []FileOutcome
	for rows.Next() {
		var f FileOutcome
		if err := rows.Scan(&f.Path, &f.Outcome, &f.Reason); err != nil {
			return nil, nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return &r, files, rows.Err()
}
