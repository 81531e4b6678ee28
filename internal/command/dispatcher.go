package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/JamesPrial/notgpt/internal/task"
	"github.com/JamesPrial/notgpt/internal/tasklist"
)

// Command keywords. The first word of an input line is always read as the
// keyword; the rest of the line is its argument.
const (
	CmdTodo     = "todo"
	CmdDeadline = "deadline"
	CmdEvent    = "event"
	CmdMark     = OpMark
	CmdUnmark   = OpUnmark
	CmdDelete   = OpDelete
	CmdFind     = "find"
	CmdList     = "list"
	CmdClear    = "clear"
	CmdHelp     = "help"
	CmdBye      = "bye"
)

// HelpText lists every command with an example.
const HelpText = `here's what i can do:
todo <description>                          e.g. todo read book
deadline <description> /by <date>           e.g. deadline return book /by 2020.11.11
event <description> /from <start> /to <end> e.g. event camp /from 2020.12.1 /to 2020.12.3
list                                        show every task
find <keyword>                              show tasks containing keyword
mark <n> / unmark <n>                       set task n as done / not done
delete <n>                                  remove task n
clear                                       remove every task
bye                                         leave`

// Dispatcher routes input lines to the task list.
//
// It is not safe for concurrent use; front ends that accept requests in
// parallel must serialise calls.
type Dispatcher struct {
	list *tasklist.TaskList
}

// NewDispatcher returns a Dispatcher operating on list.
func NewDispatcher(list *tasklist.TaskList) *Dispatcher {
	return &Dispatcher{list: list}
}

// List returns the underlying task list.
func (d *Dispatcher) List() *tasklist.TaskList { return d.list }

// Handle runs one input line and returns the reply. quit is true when the
// user asked to leave.
func (d *Dispatcher) Handle(ctx context.Context, line string) (reply string, quit bool) {
	keyword, arg := Split(line)

	switch keyword {
	case "":
		return "say something bud", false
	case CmdTodo:
		return d.Todo(ctx, arg), false
	case CmdDeadline:
		return d.Deadline(ctx, arg), false
	case CmdEvent:
		return d.Event(ctx, arg), false
	case CmdMark, CmdUnmark, CmdDelete:
		return Execute(ctx, d.list, arg, keyword), false
	case CmdFind:
		return d.Find(arg), false
	case CmdList:
		return d.ListAll(), false
	case CmdClear:
		return d.Clear(ctx), false
	case CmdHelp:
		return HelpText, false
	case CmdBye:
		return "bye! see u soon", true
	default:
		return fmt.Sprintf("i don't get %q...\ntype \"help\" to see what i can do", keyword), false
	}
}

// Split separates the command keyword (lower-cased first word) from the rest
// of the line. Any run of whitespace ends the keyword.
func Split(line string) (keyword, arg string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimSpace(line[i:])
}

// Todo adds a todo with the given description.
func (d *Dispatcher) Todo(ctx context.Context, description string) string {
	t, err := task.NewTodo(description)
	return d.add(ctx, t, err)
}

// Deadline adds a deadline from "<description> /by <date>".
func (d *Dispatcher) Deadline(ctx context.Context, raw string) string {
	t, err := task.NewDeadline(raw)
	return d.add(ctx, t, err)
}

// DeadlineParts adds a deadline whose description and due date arrive
// separately, so either may contain "/by".
func (d *Dispatcher) DeadlineParts(ctx context.Context, description, due string) string {
	t, err := task.NewDeadlineParts(description, due)
	return d.add(ctx, t, err)
}

// Event adds an event from "<description> /from <start> /to <end>".
func (d *Dispatcher) Event(ctx context.Context, raw string) string {
	t, err := task.NewEvent(raw)
	return d.add(ctx, t, err)
}

// EventParts adds an event whose description, start and end arrive
// separately.
func (d *Dispatcher) EventParts(ctx context.Context, description, from, to string) string {
	t, err := task.NewEventParts(description, from, to)
	return d.add(ctx, t, err)
}

// Mark marks the task named by indexText as done.
func (d *Dispatcher) Mark(ctx context.Context, indexText string) string {
	return Execute(ctx, d.list, indexText, OpMark)
}

// Unmark marks the task named by indexText as not done.
func (d *Dispatcher) Unmark(ctx context.Context, indexText string) string {
	return Execute(ctx, d.list, indexText, OpUnmark)
}

// Delete removes the task named by indexText.
func (d *Dispatcher) Delete(ctx context.Context, indexText string) string {
	return Execute(ctx, d.list, indexText, OpDelete)
}

// Find lists the tasks whose description contains keyword.
func (d *Dispatcher) Find(keyword string) string {
	if keyword == "" {
		return "find what tho? give me a keyword"
	}
	found := d.list.Find(keyword)
	if found == "" {
		return fmt.Sprintf("nothing matches %q...", keyword)
	}
	return "found these:\n" + found
}

// ListAll lists every task.
func (d *Dispatcher) ListAll() string {
	if d.list.Size() == 0 {
		return "u got no tasks rn"
	}
	return "here's ur tasks:\n" + d.list.List()
}

// Clear removes every task.
func (d *Dispatcher) Clear(ctx context.Context) string {
	if err := d.list.Clear(ctx); err != nil {
		return "cleared all tasks" + fmt.Sprintf(msgSaveFailed, errors.Unwrap(err))
	}
	return "cleared all tasks\nuse \"list\" to see changes"
}

func (d *Dispatcher) add(ctx context.Context, t task.Task, err error) string {
	if err != nil {
		return "hmm that doesn't look right bud...\n" + describeInvalid(err)
	}

	reply := fmt.Sprintf("added: %s\nnow u have %d tasks", t.Display(), d.list.Size()+1)
	if err := d.list.Add(ctx, t); err != nil {
		return reply + fmt.Sprintf(msgSaveFailed, errors.Unwrap(err))
	}
	return reply
}

// describeInvalid strips the sentinel prefix so only the format hint remains.
func describeInvalid(err error) string {
	return strings.TrimPrefix(err.Error(), task.ErrInvalidArgument.Error()+": ")
}
