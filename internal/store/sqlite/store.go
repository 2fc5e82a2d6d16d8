// Package sqlite keeps a history of rendered simulations in SQLite. Each row
// holds the canonical options string, so any run can be replayed exactly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cellmachine/internal/platform/sqlitemigrate"
	"cellmachine/internal/runner"
	"cellmachine/internal/store/sqlite/migrations"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("run not found")

// Run is one recorded simulation.
type Run struct {
	ID             string
	Options        string
	FileName       string
	Format         string
	StepsRequested int
	StepsSimulated int
	FinalAlive     int
	MediaSize      int
	CreatedAt      time.Time
}

// Store persists run history in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite history store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun stores the outcome of res under a fresh ID.
func (s *Store) RecordRun(ctx context.Context, res runner.Result) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Run{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(res.Summary) == "" {
		return Run{}, fmt.Errorf("run options are required")
	}
	run := Run{
		ID:             uuid.NewString(),
		Options:        res.Summary,
		FileName:       res.FileName,
		Format:         res.Format.String(),
		StepsRequested: res.StepsRequested,
		StepsSimulated: res.StepsSimulated,
		FinalAlive:     res.FinalAlive,
		MediaSize:      res.Size(),
		CreatedAt:      s.now().UTC().Truncate(time.Millisecond),
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (
		   id,
		   options,
		   file_name,
		   format,
		   steps_requested,
		   steps_simulated,
		   final_alive,
		   media_size,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Options,
		run.FileName,
		run.Format,
		run.StepsRequested,
		run.StepsSimulated,
		run.FinalAlive,
		run.MediaSize,
		toMillis(run.CreatedAt),
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

const runColumns = `id, options, file_name, format, steps_requested, steps_simulated,
		        final_alive, media_size, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var createdAt int64
	err := row.Scan(
		&run.ID,
		&run.Options,
		&run.FileName,
		&run.Format,
		&run.StepsRequested,
		&run.StepsSimulated,
		&run.FinalAlive,
		&run.MediaSize,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = fromMillis(createdAt)
	return run, nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Run{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, fmt.Errorf("run id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
