package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/JamesPrial/notgpt/internal/command"
)

// Prompt is printed before each input line in plain mode.
const Prompt = "> "

// RunPlain reads commands from in one line at a time and writes each reply to
// out. It returns nil when the user says bye or in reaches EOF.
func RunPlain(ctx context.Context, in io.Reader, out io.Writer, d *command.Dispatcher) error {
	fmt.Fprintln(out, Greeting)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		reply, quit := d.Handle(ctx, scanner.Text())
		fmt.Fprintln(out, reply)
		if quit {
			return nil
		}
	}
}
