// Package storage provides persistence backends for the task list.
//
// Every backend stores the whole ordered collection: Save replaces whatever
// was stored before with exactly the tasks given, in order. Load returns the
// tasks in the order they were saved.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/JamesPrial/notgpt/internal/task"
)

// Backend defines the contract for task persistence.
type Backend interface {
	// Load reads all stored tasks in their saved order.
	//
	// A missing store is not an error: backends create it empty and return
	// an empty slice. When individual records are malformed, Load returns the
	// tasks that could be read together with a *LoadErrors describing the
	// rest, so callers can log and carry on.
	Load(ctx context.Context) ([]task.Task, error)

	// Save replaces the stored collection with tasks.
	//
	// Implementations must not leave a partially written collection visible
	// to a subsequent Load.
	Save(ctx context.Context, tasks []task.Task) error
}

// Locator is implemented by backends that can describe where they store data,
// for startup messages.
type Locator interface {
	Location() string
}

// LoadErrors collects per-record problems found during Load.
type LoadErrors struct {
	Errs []*task.DecodeError
}

func (e *LoadErrors) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d malformed record(s): %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual decode errors to errors.As.
func (e *LoadErrors) Unwrap() []error {
	errs := make([]error, len(e.Errs))
	for i, err := range e.Errs {
		errs[i] = err
	}
	return errs
}

// loadErrors returns nil when errs is empty so callers can return it directly.
func loadErrors(errs []*task.DecodeError) error {
	if len(errs) == 0 {
		return nil
	}
	return &LoadErrors{Errs: errs}
}

// record is the column layout shared by the database backends.
type record struct {
	Kind        string
	Done        bool
	Description string
	DueBy       string
	From        string
	To          string
}

func toRecord(t task.Task) record {
	return record{
		Kind:        string(t.Kind),
		Done:        t.Done,
		Description: t.Description,
		DueBy:       t.DueBy,
		From:        t.From,
		To:          t.To,
	}
}

// toTask validates a stored row the same way the line codec validates a line.
// Fields that do not belong to the row's kind are dropped without error: a
// todo row with a due_by value loads as a plain todo, and a deadline row keeps
// its due_by but loses any from/to.
func (r record) toTask() (task.Task, error) {
	t := task.Task{
		Kind:        task.Kind(r.Kind),
		Done:        r.Done,
		Description: r.Description,
		DueBy:       r.DueBy,
		From:        r.From,
		To:          r.To,
	}
	// Re-use the codec's validation so every backend accepts the same tasks.
	return task.DecodeLine(t.Encode())
}
