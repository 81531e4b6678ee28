package task

import (
	"fmt"
	"strings"
)

// fieldSeparator separates fields in the persisted line format:
//
//	T | 0 | read book
//	D | 1 | return book | 11 Nov 2020
//	E | 0 | project meeting | 1 Dec 2020 | 2 Dec 2020
const fieldSeparator = " | "

// DecodeError describes a persisted line that could not be turned into a Task.
type DecodeError struct {
	// Line is the 1-based line number within the decoded input, or 0 when
	// decoding a single line.
	Line int

	// Text is the offending line.
	Text string

	// Reason explains what was wrong.
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// DecodeLine parses one persisted line.
//
// Date fields are split from the right, so a description containing the
// separator survives a round trip. Dates are not re-validated.
func DecodeLine(line string) (Task, error) {
	kind, rest, ok := strings.Cut(line, fieldSeparator)
	if !ok {
		return Task{}, &DecodeError{Text: line, Reason: "missing fields"}
	}

	flag, rest, ok := strings.Cut(rest, fieldSeparator)
	if !ok {
		return Task{}, &DecodeError{Text: line, Reason: "missing description"}
	}

	var done bool
	switch flag {
	case "1":
		done = true
	case "0":
		done = false
	default:
		return Task{}, &DecodeError{Text: line, Reason: fmt.Sprintf("bad completion flag %q", flag)}
	}

	t := Task{Kind: Kind(kind), Done: done}
	switch t.Kind {
	case KindTodo:
		t.Description = rest

	case KindDeadline:
		desc, due, ok := cutLast(rest)
		if !ok {
			return Task{}, &DecodeError{Text: line, Reason: "deadline missing due date"}
		}
		t.Description, t.DueBy = desc, due

	case KindEvent:
		head, to, ok := cutLast(rest)
		if !ok {
			return Task{}, &DecodeError{Text: line, Reason: "event missing end"}
		}
		desc, from, ok := cutLast(head)
		if !ok {
			return Task{}, &DecodeError{Text: line, Reason: "event missing start"}
		}
		t.Description, t.From, t.To = desc, from, to

	default:
		return Task{}, &DecodeError{Text: line, Reason: fmt.Sprintf("unknown task kind %q", kind)}
	}

	if t.Description == "" {
		return Task{}, &DecodeError{Text: line, Reason: "empty description"}
	}

	return t, nil
}

// DecodeAll decodes every non-blank line.
//
// Malformed lines never abort the load: the tasks that decoded are returned
// in order, together with one *DecodeError per skipped line.
func DecodeAll(lines []string) ([]Task, []*DecodeError) {
	tasks := make([]Task, 0, len(lines))
	var errs []*DecodeError

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		t, err := DecodeLine(line)
		if err != nil {
			de := err.(*DecodeError)
			de.Line = i + 1
			errs = append(errs, de)
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, errs
}

// EncodeAll joins the encoded form of each task with newlines.
// There is no trailing newline; an empty slice encodes to "".
func EncodeAll(tasks []Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = t.Encode()
	}
	return strings.Join(lines, "\n")
}

func cutLast(s string) (before, after string, found bool) {
	i := strings.LastIndex(s, fieldSeparator)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(fieldSeparator):], true
}
