package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JamesPrial/notgpt/internal/storage"
	"github.com/JamesPrial/notgpt/internal/task"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ---------------------------------------------------------------------------
// FileBackend.Load
// ---------------------------------------------------------------------------

func Test_FileBackend_Load_CreatesMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "data.txt")
	b := storage.NewFileBackend(path)

	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("task file not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("created file size = %d, want 0", info.Size())
	}
}

func Test_FileBackend_Load_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	writeFile(t, path, strings.Join([]string{
		"T | 0 | first",
		"this line is junk",
		"D | 1 | second | 1 Jan 2021",
		"T | maybe | third",
	}, "\n"))

	got, err := storage.NewFileBackend(path).Load(context.Background())

	var loadErrs *storage.LoadErrors
	if !errors.As(err, &loadErrs) {
		t.Fatalf("Load() error = %v, want *LoadErrors", err)
	}
	if len(loadErrs.Errs) != 2 {
		t.Errorf("LoadErrors.Errs = %d, want 2", len(loadErrs.Errs))
	}

	var de *task.DecodeError
	if !errors.As(err, &de) {
		t.Error("errors.As(*task.DecodeError) = false, want true")
	} else if de.Line != 2 {
		t.Errorf("first decode error line = %d, want 2", de.Line)
	}

	if len(got) != 2 {
		t.Fatalf("Load() returned %d tasks, want 2", len(got))
	}
	if got[0].Description != "first" || got[1].Description != "second" {
		t.Errorf("Load() descriptions = %q, %q", got[0].Description, got[1].Description)
	}
}

func Test_FileBackend_Load_ToleratesTrailingNewline(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	writeFile(t, path, "T | 0 | first\r\nT | 1 | second\n")

	got, err := storage.NewFileBackend(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(got) != 2 || !got[1].Done {
		t.Errorf("Load() = %+v, want two tasks with the second done", got)
	}
}

func Test_FileBackend_Load_UnreadablePath(t *testing.T) {
	t.Parallel()

	// A directory where the file should be cannot be read as a file.
	dir := t.TempDir()
	got, err := storage.NewFileBackend(dir).Load(context.Background())
	if err == nil {
		t.Fatal("Load() on a directory expected error, got nil")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", got)
	}
}

// ---------------------------------------------------------------------------
// FileBackend.Save
// ---------------------------------------------------------------------------

func Test_FileBackend_Save_ExactContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	b := storage.NewFileBackend(path)

	if err := b.Save(context.Background(), sampleTasks()); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	want := "T | 0 | read book\n" +
		"D | 1 | return book | 11 Nov 2020\n" +
		"E | 0 | sync | planning | 1 Dec 2020 | after lunch"
	if got := readFile(t, path); got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func Test_FileBackend_Save_Idempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	b := storage.NewFileBackend(path)
	ctx := context.Background()

	if err := b.Save(ctx, sampleTasks()); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}
	first := readFile(t, path)

	if err := b.Save(ctx, sampleTasks()); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if second := readFile(t, path); second != first {
		t.Errorf("second save changed content:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func Test_FileBackend_Save_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := storage.NewFileBackend(filepath.Join(dir, "data.txt"))

	for i := 0; i < 3; i++ {
		if err := b.Save(context.Background(), sampleTasks()); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}

func Test_FileBackend_Location(t *testing.T) {
	t.Parallel()

	if got := storage.NewFileBackend("/x/data.txt").Location(); got != "/x/data.txt" {
		t.Errorf("Location() = %q, want %q", got, "/x/data.txt")
	}
}
