package pathutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/JamesPrial/notgpt/internal/pathutil"
)

// resolvedDir returns dir with symlinks resolved, e.g. /var -> /private/var on macOS.
func resolvedDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks(%q): %v", dir, err)
	}
	return resolved
}

// ---------------------------------------------------------------------------
// Accepted paths
// ---------------------------------------------------------------------------

func Test_ResolveSafePath_Accepted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T, baseDir string)
		userPath func(baseDir string) string
		wantRel  string
	}{
		{
			name:     "default task file",
			userPath: func(_ string) string { return "data.txt" },
			wantRel:  "data.txt",
		},
		{
			name: "relative path in existing subdirectory",
			setup: func(t *testing.T, baseDir string) {
				t.Helper()
				if err := os.MkdirAll(filepath.Join(baseDir, "lists"), 0o755); err != nil {
					t.Fatal(err)
				}
			},
			userPath: func(_ string) string { return "lists/work.txt" },
			wantRel:  filepath.Join("lists", "work.txt"),
		},
		{
			name:     "missing intermediate directories",
			userPath: func(_ string) string { return "a/b/c/tasks.db" },
			wantRel:  filepath.Join("a", "b", "c", "tasks.db"),
		},
		{
			name:     "absolute path inside base",
			userPath: func(baseDir string) string { return filepath.Join(baseDir, "data.json") },
			wantRel:  "data.json",
		},
		{
			name:     "dot segments are cleaned",
			userPath: func(_ string) string { return "./x/../data.txt" },
			wantRel:  "data.txt",
		},
		{
			name:     "dot resolves to base",
			userPath: func(_ string) string { return "." },
			wantRel:  ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			baseDir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, baseDir)
			}

			got, err := pathutil.ResolveSafePath(baseDir, tt.userPath(baseDir))
			if err != nil {
				t.Fatalf("ResolveSafePath() unexpected error: %v", err)
			}

			want := filepath.Join(resolvedDir(t, baseDir), tt.wantRel)
			if got != want {
				t.Errorf("ResolveSafePath() = %q, want %q", got, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Rejected paths
// ---------------------------------------------------------------------------

func Test_ResolveSafePath_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userPath func(baseDir string) string
		wantErr  error
	}{
		{name: "empty", userPath: func(_ string) string { return "" }, wantErr: pathutil.ErrEmptyPath},
		{name: "whitespace", userPath: func(_ string) string { return "  \t" }, wantErr: pathutil.ErrEmptyPath},
		{name: "null byte", userPath: func(_ string) string { return "data\x00.txt" }, wantErr: pathutil.ErrNullByte},
		{name: "parent traversal", userPath: func(_ string) string { return "../outside.txt" }, wantErr: pathutil.ErrEscapesBase},
		{name: "deep traversal", userPath: func(_ string) string { return "a/../../outside.txt" }, wantErr: pathutil.ErrEscapesBase},
		{
			name:     "absolute path outside base",
			userPath: func(baseDir string) string { return filepath.Join(filepath.Dir(baseDir), "elsewhere.txt") },
			wantErr:  pathutil.ErrEscapesBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			baseDir := t.TempDir()
			_, err := pathutil.ResolveSafePath(baseDir, tt.userPath(baseDir))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveSafePath() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_ResolveSafePath_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	baseDir := t.TempDir()
	outside := t.TempDir()

	if err := os.Symlink(outside, filepath.Join(baseDir, "link")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	_, err := pathutil.ResolveSafePath(baseDir, "link/data.txt")
	if !errors.Is(err, pathutil.ErrEscapesBase) {
		t.Errorf("ResolveSafePath() through escaping symlink error = %v, want ErrEscapesBase", err)
	}
}

func Test_ResolveSafePath_SymlinkInsideBase(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "real")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(baseDir, "alias")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	got, err := pathutil.ResolveSafePath(baseDir, "alias/data.txt")
	if err != nil {
		t.Fatalf("ResolveSafePath() unexpected error: %v", err)
	}
	want := filepath.Join(resolvedDir(t, baseDir), "real", "data.txt")
	if got != want {
		t.Errorf("ResolveSafePath() = %q, want %q", got, want)
	}
}
