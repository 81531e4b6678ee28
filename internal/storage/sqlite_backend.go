package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JamesPrial/notgpt/internal/task"

	_ "modernc.org/sqlite" // register sqlite driver
)

// schemaDDL defines the database schema for the SQLite backend.
//
// position is the 0-based index of the task in the list; it is rewritten on
// every save so it always matches the in-memory order.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    done INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL,
    due_by TEXT NOT NULL DEFAULT '',
    start_at TEXT NOT NULL DEFAULT '',
    end_at TEXT NOT NULL DEFAULT ''
);
`

// SQLiteBackend implements Backend using SQLite.
//
// Each Save replaces the table contents inside a single transaction, so a
// concurrent reader sees either the old list or the new one. Uses WAL mode.
type SQLiteBackend struct {
	// DBPath is the absolute path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend creates a new SQLiteBackend and initializes the database schema.
//
// Parent directories are created automatically. Returns an error if schema
// creation fails.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	backend := &SQLiteBackend{
		DBPath: dbPath,
	}

	if err := backend.ensureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

// Location returns the database path.
func (b *SQLiteBackend) Location() string { return b.DBPath }

// connect opens a new database connection with WAL mode enabled.
func (b *SQLiteBackend) connect(ctx context.Context) (*sql.DB, error) {
	dir := filepath.Dir(b.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return db, nil
}

// ensureSchema creates the tasks table if it doesn't exist.
func (b *SQLiteBackend) ensureSchema(ctx context.Context) error {
	db, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}

	return nil
}

// Load reads all tasks ordered by position.
//
// Rows that fail validation are skipped and reported through a *LoadErrors,
// numbered by their 1-based position.
func (b *SQLiteBackend) Load(ctx context.Context) ([]task.Task, error) {
	db, err := b.connect(ctx)
	if err != nil {
		return make([]task.Task, 0), err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `
		SELECT position, kind, done, description, due_by, start_at, end_at
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return make([]task.Task, 0), fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]task.Task, 0)
	var decodeErrs []*task.DecodeError
	for rows.Next() {
		var position int
		var r record

		if err := rows.Scan(&position, &r.Kind, &r.Done, &r.Description, &r.DueBy, &r.From, &r.To); err != nil {
			return make([]task.Task, 0), fmt.Errorf("failed to scan row: %w", err)
		}

		t, err := r.toTask()
		if err != nil {
			var de *task.DecodeError
			if errors.As(err, &de) {
				de.Line = position + 1
				decodeErrs = append(decodeErrs, de)
			}
			continue
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return make([]task.Task, 0), fmt.Errorf("error iterating rows: %w", err)
	}

	return result, loadErrors(decodeErrs)
}

// Save replaces every row with tasks in a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, tasks []task.Task) error {
	db, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (position, kind, done, description, due_by, start_at, end_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		r := toRecord(t)
		if _, err := stmt.ExecContext(ctx, i, r.Kind, r.Done, r.Description, r.DueBy, r.From, r.To); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}

	return nil
}
