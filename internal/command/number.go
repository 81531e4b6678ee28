// Package command turns user commands into task list operations and the
// replies shown to the user.
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JamesPrial/notgpt/internal/tasklist"
)

// Index operations accepted by Execute.
const (
	OpMark   = "mark"
	OpUnmark = "unmark"
	OpDelete = "delete"
)

// Fixed replies for index operations.
const (
	msgNotANumber = "sorry bud that ain't a number\ni don't know which task u're referring to..."
	msgOutOfRange = "that number isn't a valid task dude...\nit has to be from 1 to %d"
	msgMarked     = "marked %d as completed\nuse \"list\" to see changes"
	msgUnmarked   = "marked %d as uncompleted\nuse \"list\" to see changes"
	msgDeleted    = "deleted %d\nuse \"list\" to see changes"
	msgSaveFailed = "\n(couldn't save to disk though: %v)"
	msgUnknownOp  = "i don't know how to %q a task"
)

// Execute validates indexText and runs op ("mark", "unmark" or "delete") on
// the task it names.
//
// The text must be an integer in [1, list.Size()]; otherwise a fixed
// message is returned and the list is left untouched.
func Execute(ctx context.Context, list *tasklist.TaskList, indexText, op string) string {
	i, err := strconv.Atoi(strings.TrimSpace(indexText))
	if err != nil {
		return msgNotANumber
	}
	if i < 1 || i > list.Size() {
		return fmt.Sprintf(msgOutOfRange, list.Size())
	}

	var reply string
	switch op {
	case OpMark:
		err = list.Mark(ctx, i)
		reply = fmt.Sprintf(msgMarked, i)
	case OpUnmark:
		err = list.Unmark(ctx, i)
		reply = fmt.Sprintf(msgUnmarked, i)
	case OpDelete:
		_, err = list.Delete(ctx, i)
		reply = fmt.Sprintf(msgDeleted, i)
	default:
		return fmt.Sprintf(msgUnknownOp, op)
	}

	if errors.Is(err, tasklist.ErrIndexOutOfRange) {
		return fmt.Sprintf(msgOutOfRange, list.Size())
	}
	if err != nil {
		return reply + fmt.Sprintf(msgSaveFailed, errors.Unwrap(err))
	}
	return reply
}
