package storage

import (
	"fmt"
	"os"

	"github.com/JamesPrial/notgpt/internal/config"
	"github.com/JamesPrial/notgpt/internal/pathutil"
)

// GetBackend returns the storage backend selected by cfg.Backend.
//
// File-based backends keep their files inside cfg.DataDir; a configured path
// that resolves outside it is rejected. The data directory is created if
// missing.
func GetBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		path, err := dataPath(cfg.DataDir, cfg.FilePath, "data.txt")
		if err != nil {
			return nil, fmt.Errorf("failed to determine task file path: %w", err)
		}
		return NewFileBackend(path), nil

	case config.BackendJSON:
		path, err := dataPath(cfg.DataDir, cfg.FilePath, "data.json")
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON file path: %w", err)
		}
		return NewJSONBackend(path), nil

	case config.BackendSQLite:
		path, err := dataPath(cfg.DataDir, cfg.SQLitePath, "tasks.db")
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		return NewSQLiteBackend(path)

	case config.BackendPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("postgres backend requires a connection string")
		}
		return NewPostgresBackend(cfg.PostgresURL)

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected 'file', 'json', 'sqlite' or 'postgres'", cfg.Backend)
	}
}

// dataPath resolves name (or fallback when name is empty) inside dataDir.
func dataPath(dataDir, name, fallback string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	if name == "" {
		name = fallback
	}
	return pathutil.ResolveSafePath(dataDir, name)
}
