package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sellsight/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases can simply be deleted, the ledger is rebuilt from
// subsequent runs.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Item phase names recorded per run.
const (
	PhaseConvert   = "convert"
	PhaseClean     = "clean"
	PhaseSummarize = "summarize"
	PhaseTranslate = "translate"
)

// Item phase outcomes.
const (
	ItemOK      = "ok"
	ItemSkipped = "skipped"
	ItemFailed  = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID          string
	Period      string
	Command     string
	Status      string
	StartedAt   time.Time
	FinishedAt  time.Time
	ItemsTotal  int
	ItemsFailed int
	Detail      string
}

// ItemRecord is one phase outcome for one item within a run.
type ItemRecord struct {
	RunID      string
	ItemID     string
	Phase      string
	Status     string
	Detail     string
	RecordedAt time.Time
}

// Store records run history backed by SQLite. The ledger is observational:
// the pipeline decides what to (re)do from artifacts on disk, never from
// these rows, so a deleted database costs nothing but history.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// BeginRun inserts a new running-state row and returns its generated id.
func (s *Store) BeginRun(ctx context.Context, period, command string) (string, error) {
	if period == "" {
		return "", errors.New("period is required")
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, period, command, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, period, command, RunRunning, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun closes out a run with its final status and counts.
func (s *Store) FinishRun(ctx context.Context, runID, status string, total, failed int, detail string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, items_total = ?, items_failed = ?, detail = ? WHERE id = ?`,
		status, now, total, failed, nullableString(detail), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: run %s not found", runID)
	}
	return nil
}

// RecordItem upserts one phase outcome for one item within a run.
func (s *Store) RecordItem(ctx context.Context, rec ItemRecord) error {
	if rec.RunID == "" || rec.ItemID == "" || rec.Phase == "" {
		return errors.New("run id, item id, and phase are required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_items (run_id, item_id, phase, status, detail, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (run_id, item_id, phase) DO UPDATE SET
            status = excluded.status,
            detail = excluded.detail,
            recorded_at = excluded.recorded_at`,
		rec.RunID, rec.ItemID, rec.Phase, rec.Status, nullableString(rec.Detail), now,
	)
	if err != nil {
		return fmt.Errorf("record item: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, period, command, status, started_at, finished_at, items_total, items_failed, detail
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
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
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ItemsForRun returns every phase outcome recorded under one run, ordered by
// item then phase.
func (s *Store) ItemsForRun(ctx context.Context, runID string) ([]ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, item_id, phase, status, detail, recorded_at
         FROM run_items WHERE run_id = ? ORDER BY item_id, phase`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run items: %w", err)
	}
	defer rows.Close()

	var records []ItemRecord
	for rows.Next() {
		var rec ItemRecord
		var detail sql.NullString
		var recordedAt string
		if err := rows.Scan(&rec.RunID, &rec.ItemID, &rec.Phase, &rec.Status, &detail, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		rec.Detail = detail.String
		rec.RecordedAt = parseTimestamp(recordedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run items: %w", err)
	}
	return records, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var finishedAt, detail sql.NullString
	var startedAt string
	if err := rows.Scan(&run.ID, &run.Period, &run.Command, &run.Status, &startedAt,
		&finishedAt, &run.ItemsTotal, &run.ItemsFailed, &detail); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTimestamp(finishedAt.String)
	}
	run.Detail = detail.String
	return run, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
