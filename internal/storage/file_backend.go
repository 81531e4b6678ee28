package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JamesPrial/notgpt/internal/task"
)

// FileBackend implements Backend using a plain text file, one encoded task
// per line with no header.
type FileBackend struct {
	// Path is the absolute path to the task file.
	Path string
}

// NewFileBackend creates a new FileBackend for the given file path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Location returns the task file path.
func (b *FileBackend) Location() string { return b.Path }

// Load reads and decodes the task file.
//
// If the file does not exist it is created empty, along with any missing
// parent directories, and an empty slice is returned. Malformed lines are
// skipped and reported through a *LoadErrors alongside the decoded tasks.
func (b *FileBackend) Load(_ context.Context) ([]task.Task, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		if err := createEmpty(b.Path); err != nil {
			return make([]task.Task, 0), err
		}
		return make([]task.Task, 0), nil
	}
	if err != nil {
		return make([]task.Task, 0), fmt.Errorf("failed to read task file: %w", err)
	}

	if len(data) == 0 {
		return make([]task.Task, 0), nil
	}

	tasks, decodeErrs := task.DecodeAll(strings.Split(string(data), "\n"))
	return tasks, loadErrors(decodeErrs)
}

// Save encodes tasks and atomically replaces the task file.
func (b *FileBackend) Save(_ context.Context, tasks []task.Task) error {
	return writeAtomic(b.Path, []byte(task.EncodeAll(tasks)))
}

// createEmpty creates an empty file at path, including parent directories.
func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create task file: %w", err)
	}
	return f.Close()
}

// writeAtomic writes data to a temporary file in the same directory and
// renames it over path, so readers see either the old or the new content.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}
