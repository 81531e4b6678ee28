// Package tasklist owns the ordered, in-memory task collection and keeps the
// configured backend in sync with it.
//
// Tasks are addressed externally by 1-based index. Every successful mutation
// rewrites the whole collection through the backend.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/JamesPrial/notgpt/internal/storage"
	"github.com/JamesPrial/notgpt/internal/task"
)

// ErrIndexOutOfRange is matched by every *IndexError via errors.Is.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside [1, Size].
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task %d does not exist (valid range 1 to %d)", e.Index, e.Size)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) true for any *IndexError.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// TaskList is the ordered task collection.
//
// It is not safe for concurrent use; callers serialise access.
type TaskList struct {
	tasks   []task.Task
	backend storage.Backend
	logger  *log.Logger
}

// New creates a TaskList and loads it from backend.
//
// Load problems never prevent startup: malformed records are logged and
// skipped, and an unreadable store leaves the list empty.
func New(ctx context.Context, backend storage.Backend, logger *log.Logger) *TaskList {
	l := &TaskList{
		tasks:   make([]task.Task, 0),
		backend: backend,
		logger:  logger,
	}

	tasks, err := backend.Load(ctx)

	var loadErrs *storage.LoadErrors
	switch {
	case errors.As(err, &loadErrs):
		for _, de := range loadErrs.Errs {
			logger.Warn("skipping malformed task", "line", de.Line, "reason", de.Reason, "text", de.Text)
		}
	case err != nil:
		logger.Error("could not load tasks, starting empty", "err", err)
		return l
	}

	l.tasks = append(l.tasks, tasks...)

	where := "storage"
	if loc, ok := backend.(storage.Locator); ok {
		where = loc.Location()
	}
	logger.Info("tasks loaded", "count", len(l.tasks), "from", where)

	return l
}

// Size returns the number of tasks.
func (l *TaskList) Size() int { return len(l.tasks) }

// Tasks returns a copy of the current tasks in order.
func (l *TaskList) Tasks() []task.Task {
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task at 1-based index i.
func (l *TaskList) Get(i int) (task.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return task.Task{}, err
	}
	return l.tasks[i-1], nil
}

// Add appends t to the end of the list.
func (l *TaskList) Add(ctx context.Context, t task.Task) error {
	l.tasks = append(l.tasks, t)
	return l.save(ctx)
}

// Mark marks the task at 1-based index i as done.
func (l *TaskList) Mark(ctx context.Context, i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.tasks[i-1].Complete()
	return l.save(ctx)
}

// Unmark marks the task at 1-based index i as not done.
func (l *TaskList) Unmark(ctx context.Context, i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.tasks[i-1].Uncomplete()
	return l.save(ctx)
}

// Delete removes the task at 1-based index i and returns it. Later tasks
// move up by one.
func (l *TaskList) Delete(ctx context.Context, i int) (task.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return task.Task{}, err
	}
	removed := l.tasks[i-1]
	l.tasks = append(l.tasks[:i-1], l.tasks[i:]...)
	return removed, l.save(ctx)
}

// Clear removes every task.
func (l *TaskList) Clear(ctx context.Context) error {
	l.tasks = make([]task.Task, 0)
	return l.save(ctx)
}

// List renders every task as "<n>. <display>" lines, numbered from 1.
func (l *TaskList) List() string {
	return render(l.tasks)
}

// Find renders the tasks whose description contains keyword, numbered from 1
// over the matches only. Returns "" when nothing matches.
func (l *TaskList) Find(keyword string) string {
	matches := make([]task.Task, 0)
	for _, t := range l.tasks {
		if t.Matches(keyword) {
			matches = append(matches, t)
		}
	}
	return render(matches)
}

func (l *TaskList) checkIndex(i int) error {
	if i < 1 || i > len(l.tasks) {
		return &IndexError{Index: i, Size: len(l.tasks)}
	}
	return nil
}

// save writes the whole list. A failed write keeps the in-memory change; the
// error is logged and returned so the caller can tell the user.
func (l *TaskList) save(ctx context.Context) error {
	if err := l.backend.Save(ctx, l.tasks); err != nil {
		l.logger.Error("could not save tasks", "err", err)
		return fmt.Errorf("saving tasks: %w", err)
	}
	l.logger.Debug("tasks saved", "count", len(l.tasks))
	return nil
}

func render(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(t.Display())
	}
	return b.String()
}
