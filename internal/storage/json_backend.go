package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/JamesPrial/notgpt/internal/task"
)

// JSONBackend implements Backend using a JSON array of tasks.
//
// Writes use the same temp-file-and-rename scheme as FileBackend.
type JSONBackend struct {
	// Path is the absolute path to the JSON file.
	Path string
}

// NewJSONBackend creates a new JSONBackend for the given file path.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{Path: path}
}

// Location returns the JSON file path.
func (b *JSONBackend) Location() string { return b.Path }

// Load reads all tasks from the JSON file.
//
// A missing file is created containing an empty array. A file that is not a
// JSON array of tasks is an error; individual entries that fail validation
// are skipped and reported through a *LoadErrors.
func (b *JSONBackend) Load(_ context.Context) ([]task.Task, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		if err := writeAtomic(b.Path, []byte("[]\n")); err != nil {
			return make([]task.Task, 0), err
		}
		return make([]task.Task, 0), nil
	}
	if err != nil {
		return make([]task.Task, 0), fmt.Errorf("failed to read task file: %w", err)
	}

	var stored []task.Task
	if err := json.Unmarshal(data, &stored); err != nil {
		return make([]task.Task, 0), fmt.Errorf("failed to parse task file: %w", err)
	}

	tasks := make([]task.Task, 0, len(stored))
	var decodeErrs []*task.DecodeError
	for i, s := range stored {
		t, err := toRecord(s).toTask()
		if err != nil {
			var de *task.DecodeError
			if errors.As(err, &de) {
				de.Line = i + 1
				decodeErrs = append(decodeErrs, de)
			}
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, loadErrors(decodeErrs)
}

// Save writes tasks as an indented JSON array with a trailing newline.
func (b *JSONBackend) Save(_ context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = make([]task.Task, 0)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	data = append(data, '\n')

	return writeAtomic(b.Path, data)
}
