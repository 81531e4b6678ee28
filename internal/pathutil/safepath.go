// Package pathutil resolves user-configured file locations inside a base
// directory.
//
// Task files and databases may be configured with relative or absolute
// paths; either way the final, symlink-resolved location has to stay inside
// the data directory.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned for empty or whitespace-only paths.
	ErrEmptyPath = errors.New("path is empty or whitespace-only")

	// ErrNullByte is returned for paths containing a NUL byte.
	ErrNullByte = errors.New("path contains null byte")

	// ErrEscapesBase is returned when the resolved path leaves the base directory.
	ErrEscapesBase = errors.New("path escapes base directory")
)

// ResolveSafePath resolves userPath against baseDir and returns the
// symlink-resolved absolute path, provided it lies within baseDir.
//
// Relative paths are joined with baseDir. The target itself need not exist;
// the deepest existing ancestor is resolved and the missing tail re-appended.
// baseDir must exist.
//
// Example:
//
//	path, err := ResolveSafePath("/home/user/notgpt/data", "data.txt")
//	// path == "/home/user/notgpt/data/data.txt"
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", ErrEmptyPath
	}
	if strings.Contains(userPath, "\x00") {
		return "", ErrNullByte
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolveExisting(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}

	base, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, userPath)
	}

	return resolved, nil
}

// resolveExisting resolves symlinks in the longest existing prefix of path
// and re-appends the components that do not exist yet.
func resolveExisting(path string) (string, error) {
	current := path
	var missing []string

	for {
		if _, err := os.Lstat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("failed to resolve symlinks: %w", err)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat %s: %w", current, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
