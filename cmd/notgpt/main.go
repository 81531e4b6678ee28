// Package main implements notgpt, a chat-style personal task tracker.
//
// Commands are typed one per line: todo, deadline, event, list, find, mark,
// unmark, delete, clear, help and bye. On a terminal notgpt opens a
// full-screen chat; with -plain, or when stdin/stdout are not terminals, it
// runs a line-based prompt instead.
//
// Exit codes:
//   - 0: the user said bye or input ended
//   - 1: input or terminal error
//   - 2: bad command-line flags
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/JamesPrial/notgpt/internal/command"
	"github.com/JamesPrial/notgpt/internal/config"
	"github.com/JamesPrial/notgpt/internal/logging"
	"github.com/JamesPrial/notgpt/internal/storage"
	"github.com/JamesPrial/notgpt/internal/tasklist"
	"github.com/JamesPrial/notgpt/internal/ui"
)

// logFileName receives log output while the full-screen chat owns the
// terminal. It lives in the data directory.
const logFileName = "notgpt.log"

// run contains the main logic, returning an exit code.
//
// Accepts stdin, stdout and stderr to enable testing without modifying global
// state.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("notgpt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg, err := config.Load(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logging.New(stderr, "info").Error("bad configuration", "err", err)
		return 2
	}

	logger := logging.New(stderr, cfg.LogLevel)

	backend, err := storage.OpenBackend(cfg)
	if err != nil {
		logger.Error("could not open storage, changes will not be saved", "backend", cfg.Backend, "err", err)
	}

	list := tasklist.New(ctx, backend, logger)
	d := command.NewDispatcher(list)

	if cfg.Plain || !interactive(stdin, stdout) {
		if err := ui.RunPlain(ctx, stdin, stdout, d); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("input failed", "err", err)
			return 1
		}
		return 0
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err == nil {
		f, err := os.OpenFile(filepath.Join(cfg.DataDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer func() { _ = f.Close() }()
			logger.SetOutput(f)
		}
	}

	if err := ui.RunChat(ctx, stdin, stdout, d); err != nil {
		logger.SetOutput(stderr)
		logger.Error("chat failed", "err", err)
		return 1
	}
	return 0
}

// interactive reports whether both ends are terminals.
func interactive(stdin io.Reader, stdout io.Writer) bool {
	in, ok := stdin.(*os.File)
	return ok && ui.IsTTY(in) && ui.IsTTY(stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
