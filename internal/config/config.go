// Package config loads notgpt settings.
//
// Sources are applied in priority order, later ones overriding earlier ones:
//  1. Defaults
//  2. Project config file (notgpt.toml or .notgpt.toml in the working directory)
//  3. Environment variables, after loading an optional .env file
//  4. CLI flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Backend names accepted by Config.Backend.
const (
	BackendFile     = "file"
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all runtime settings.
type Config struct {
	// DataDir is the directory holding the task file or database.
	DataDir string `toml:"data_dir"`

	// Backend selects the persistence backend: file, json, sqlite or postgres.
	Backend string `toml:"backend"`

	// FilePath is the task file for the file and json backends.
	// Relative paths are resolved against DataDir.
	FilePath string `toml:"file"`

	// SQLitePath is the database file for the sqlite backend.
	// Relative paths are resolved against DataDir.
	SQLitePath string `toml:"sqlite_path"`

	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string `toml:"postgres_url"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Plain disables the terminal chat UI in favour of a line-based prompt.
	Plain bool `toml:"plain"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		DataDir:    "data",
		Backend:    BackendFile,
		SQLitePath: "tasks.db",
		LogLevel:   "info",
	}
}

// projectConfigFiles are tried in order; the first one found wins.
var projectConfigFiles = []string{"notgpt.toml", ".notgpt.toml"}

// Load builds a Config from defaults, the project config file, the
// environment and the given flags. fs may be nil, in which case flags are
// not parsed.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(&cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// A missing .env is normal; only a malformed one is an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	loadFromEnv(&cfg)

	if fs != nil {
		if err := parseFlags(&cfg, fs, args); err != nil {
			return nil, fmt.Errorf("parsing flags: %w", err)
		}
	}

	if err := finalize(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func findProjectConfigFile() string {
	for _, name := range projectConfigFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NOTGPT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("NOTGPT_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("NOTGPT_FILE"); v != "" {
		cfg.FilePath = v
	}
	if v := os.Getenv("NOTGPT_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("NOTGPT_POSTGRES_URL"); v != "" {
		cfg.PostgresURL = v
	}
	if v := os.Getenv("NOTGPT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for task data")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: file, json, sqlite or postgres")
	fs.StringVar(&cfg.FilePath, "file", cfg.FilePath, "task file for the file and json backends")
	fs.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "database file for the sqlite backend")
	fs.StringVar(&cfg.PostgresURL, "postgres", cfg.PostgresURL, "connection string for the postgres backend")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "use a line-based prompt instead of the chat UI")
	return fs.Parse(args)
}

// finalize normalises values and fills in backend-dependent defaults.
func finalize(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	switch cfg.Backend {
	case BackendFile:
		if cfg.FilePath == "" {
			cfg.FilePath = "data.txt"
		}
	case BackendJSON:
		if cfg.FilePath == "" {
			cfg.FilePath = "data.json"
		}
	case BackendSQLite:
	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresURL) == "" {
			return fmt.Errorf("backend %q requires a postgres connection string (NOTGPT_POSTGRES_URL or -postgres)", cfg.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend: %q. Expected 'file', 'json', 'sqlite' or 'postgres'", cfg.Backend)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}

	return nil
}
