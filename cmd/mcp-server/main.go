// Package main implements the notgpt MCP server.
//
// The server exposes the task list as tools (add_todo, mark_task, list_tasks
// and so on) and communicates via stdio JSON-RPC (Model Context Protocol).
// Storage is configured exactly as for the notgpt chat; see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/notgpt/internal/config"
	"github.com/JamesPrial/notgpt/internal/logging"
	"github.com/JamesPrial/notgpt/internal/mcpserver"
	"github.com/JamesPrial/notgpt/internal/storage"
	"github.com/JamesPrial/notgpt/internal/tasklist"
)

// setup loads configuration and builds the server. Split from run so it can
// be tested without serving stdio.
func setup(args []string, stderr io.Writer) (*server.MCPServer, *log.Logger, error) {
	fs := flag.NewFlagSet("mcp-server", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg, err := config.Load(fs, args)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(stderr, cfg.LogLevel).WithPrefix("mcp-server")

	backend, err := storage.OpenBackend(cfg)
	if err != nil {
		logger.Error("could not open storage, changes will not be saved", "backend", cfg.Backend, "err", err)
	}

	list := tasklist.New(context.Background(), backend, logger)

	srv, err := mcpserver.NewServer(list)
	if err != nil {
		return nil, logger, fmt.Errorf("failed to create MCP server: %w", err)
	}
	return srv, logger, nil
}

func run(args []string) int {
	srv, logger, err := setup(args, os.Stderr)
	if err != nil {
		if logger == nil {
			logger = logging.New(os.Stderr, "info").WithPrefix("mcp-server")
		}
		logger.Error("startup failed", "err", err)
		return 1
	}

	errLogger := logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		logger.Error("server error", "err", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
