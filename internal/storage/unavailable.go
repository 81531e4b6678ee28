package storage

import (
	"context"
	"fmt"

	"github.com/JamesPrial/notgpt/internal/config"
	"github.com/JamesPrial/notgpt/internal/task"
)

// UnavailableBackend stands in when the configured backend could not be set
// up. Every Load and Save fails with the setup error, so the task list runs
// in memory and each reply says the change was not saved.
type UnavailableBackend struct {
	Err error
}

// NewUnavailableBackend returns a backend that always fails with err.
func NewUnavailableBackend(err error) *UnavailableBackend {
	return &UnavailableBackend{Err: err}
}

// Location describes the backend for startup logs.
func (b *UnavailableBackend) Location() string { return "nowhere (storage unavailable)" }

// Load returns an empty slice and the setup error.
func (b *UnavailableBackend) Load(context.Context) ([]task.Task, error) {
	return make([]task.Task, 0), b.Err
}

// Save returns the setup error.
func (b *UnavailableBackend) Save(context.Context, []task.Task) error {
	return b.Err
}

// OpenBackend is GetBackend for front ends that must keep running: when the
// backend cannot be set up it returns an *UnavailableBackend carrying the
// error, along with that error for logging.
func OpenBackend(cfg *config.Config) (Backend, error) {
	b, err := GetBackend(cfg)
	if err != nil {
		err = fmt.Errorf("storage unavailable: %w", err)
		return NewUnavailableBackend(err), err
	}
	return b, nil
}
