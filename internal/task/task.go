// Package task provides the task model and its line-based persistence codec.
//
// A Task is one of three kinds: a plain todo, a deadline with a due date, or
// an event with a start and an end. Every kind shares the same capability set
// (complete, uncomplete, match, encode, display) dispatched on Kind.
package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JamesPrial/notgpt/internal/dateparse"
)

// Kind identifies the task variant.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// Delimiters used when constructing deadlines and events from raw text.
const (
	ByDelimiter   = "/by"
	FromDelimiter = "/from"
	ToDelimiter   = "/to"
)

// ErrInvalidArgument is returned when construction input is malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// Task is a single tracked item.
//
// Description never changes after construction. DueBy is set for deadlines,
// From and To for events; each holds either a canonical date or the raw text
// the user typed.
type Task struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	DueBy       string `json:"dueBy,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// NewTodo creates a todo task.
func NewTodo(description string) (Task, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, fmt.Errorf("%w: the description of a todo cannot be empty", ErrInvalidArgument)
	}
	if err := checkText(desc); err != nil {
		return Task{}, err
	}
	return Task{Kind: KindTodo, Description: desc}, nil
}

// NewDeadline creates a deadline from text of the form
// "<description> /by <date>".
func NewDeadline(raw string) (Task, error) {
	desc, due, found := strings.Cut(raw, ByDelimiter)
	if !found {
		return Task{}, fmt.Errorf("%w: a deadline needs %q, e.g. deadline return book /by 2020.11.11", ErrInvalidArgument, ByDelimiter)
	}
	return NewDeadlineParts(desc, due)
}

// NewDeadlineParts creates a deadline from an already separated description
// and due date. Neither part is searched for delimiters.
func NewDeadlineParts(description, due string) (Task, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, fmt.Errorf("%w: the description of a deadline cannot be empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(due) == "" {
		return Task{}, fmt.Errorf("%w: a deadline needs a date after %q", ErrInvalidArgument, ByDelimiter)
	}
	if err := checkText(desc, due); err != nil {
		return Task{}, err
	}

	return Task{
		Kind:        KindDeadline,
		Description: desc,
		DueBy:       dateparse.ParseOrRaw(due),
	}, nil
}

// NewEvent creates an event from text of the form
// "<description> /from <start> /to <end>".
func NewEvent(raw string) (Task, error) {
	desc, span, found := strings.Cut(raw, FromDelimiter)
	if !found {
		return Task{}, fmt.Errorf("%w: an event needs %q and %q, e.g. event meeting /from 2020.11.11 /to 2020.11.12", ErrInvalidArgument, FromDelimiter, ToDelimiter)
	}
	from, to, found := strings.Cut(span, ToDelimiter)
	if !found {
		return Task{}, fmt.Errorf("%w: an event needs %q after %q", ErrInvalidArgument, ToDelimiter, FromDelimiter)
	}
	return NewEventParts(desc, from, to)
}

// NewEventParts creates an event from an already separated description,
// start and end. No part is searched for delimiters.
func NewEventParts(description, from, to string) (Task, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, fmt.Errorf("%w: the description of an event cannot be empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return Task{}, fmt.Errorf("%w: an event needs both a start and an end", ErrInvalidArgument)
	}
	if err := checkText(desc, from, to); err != nil {
		return Task{}, err
	}

	return Task{
		Kind:        KindEvent,
		Description: desc,
		From:        dateparse.ParseOrRaw(from),
		To:          dateparse.ParseOrRaw(to),
	}, nil
}

// Complete marks the task as done. Calling it on a done task is a no-op.
func (t *Task) Complete() { t.Done = true }

// Uncomplete marks the task as not done.
func (t *Task) Uncomplete() { t.Done = false }

// Matches reports whether keyword occurs in the description (case-sensitive).
func (t Task) Matches(keyword string) bool {
	return strings.Contains(t.Description, keyword)
}

// Encode returns the one-line persisted form of the task.
func (t Task) Encode() string {
	fields := []string{string(t.Kind), doneFlag(t.Done), t.Description}
	switch t.Kind {
	case KindDeadline:
		fields = append(fields, t.DueBy)
	case KindEvent:
		fields = append(fields, t.From, t.To)
	}
	return strings.Join(fields, fieldSeparator)
}

// Display returns the human-readable form, e.g. "[D][X] return book (by: 11 Nov 2020)".
func (t Task) Display() string {
	mark := " "
	if t.Done {
		mark = "X"
	}

	base := fmt.Sprintf("[%s][%s] %s", t.Kind, mark, t.Description)
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, t.DueBy)
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", base, t.From, t.To)
	default:
		return base
	}
}

// String implements fmt.Stringer using the display form.
func (t Task) String() string { return t.Display() }

// checkText rejects input that would not survive the line format: line
// breaks anywhere, and "|" in any date field (every argument after the
// description).
func checkText(description string, dates ...string) error {
	for _, s := range append([]string{description}, dates...) {
		if strings.ContainsAny(s, "\r\n") {
			return fmt.Errorf("%w: tasks must fit on one line", ErrInvalidArgument)
		}
	}
	for _, d := range dates {
		if strings.Contains(d, "|") {
			return fmt.Errorf("%w: dates cannot contain \"|\"", ErrInvalidArgument)
		}
	}
	return nil
}

func doneFlag(done bool) string {
	if done {
		return "1"
	}
	return "0"
}
