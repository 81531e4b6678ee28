package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// isolate runs the test in an empty working directory with no NOTGPT_
// variables set, so no local config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "NOTGPT_") {
			t.Setenv(name, "")
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// run(): exit code tests
// ---------------------------------------------------------------------------

func Test_run_Cases(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantExitCode int
		wantStdout   []string
		wantStderr   string
	}{
		{
			name:         "plain session exits 0",
			args:         []string{"-plain"},
			stdin:        "todo read book\nlist\nbye\n",
			wantExitCode: 0,
			wantStdout:   []string{"hi, i'm notgpt", "now u have 1 tasks", "1. [T][ ] read book", "bye! see u soon"},
		},
		{
			name:         "non-terminal stdin falls back to plain",
			stdin:        "list\n",
			wantExitCode: 0,
			wantStdout:   []string{"u got no tasks rn"},
		},
		{
			name:         "json backend",
			args:         []string{"-backend", "json"},
			stdin:        "deadline pay rent /by 2024.3.1\n",
			wantExitCode: 0,
			wantStdout:   []string{"[D][ ] pay rent (by: 1 Mar 2024)"},
		},
		{
			name:         "unknown backend exits 2",
			args:         []string{"-backend", "redis"},
			wantExitCode: 2,
			wantStderr:   "unknown storage backend",
		},
		{
			name:         "bad flag exits 2",
			args:         []string{"-bogus"},
			wantExitCode: 2,
			wantStderr:   "bogus",
		},
		{
			name:         "help exits 0",
			args:         []string{"-h"},
			wantExitCode: 0,
			wantStderr:   "-backend",
		},
		{
			name:         "escaping file path still runs",
			args:         []string{"-plain", "-file", "../../elsewhere.txt"},
			stdin:        "todo read book\n",
			wantExitCode: 0,
			wantStdout:   []string{"added: [T][ ] read book", "couldn't save to disk though"},
			wantStderr:   "could not open storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			args := append([]string{"-data-dir", filepath.Join(dir, "data")}, tt.args...)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), args, strings.NewReader(tt.stdin), &stdout, &stderr)

			if code != tt.wantExitCode {
				t.Errorf("run() = %d, want %d\nstderr: %s", code, tt.wantExitCode, stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q\ngot:\n%s", want, stdout.String())
				}
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q\ngot:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// run(): persistence across sessions
// ---------------------------------------------------------------------------

func Test_run_PersistsBetweenSessions(t *testing.T) {
	dir := isolate(t)
	dataDir := filepath.Join(dir, "data")
	args := []string{"-plain", "-data-dir", dataDir}

	var out1, errOut bytes.Buffer
	if code := run(context.Background(), args, strings.NewReader("todo a\nevent b /from mon /to tue\nmark 2\n"), &out1, &errOut); code != 0 {
		t.Fatalf("first run() = %d, stderr: %s", code, errOut.String())
	}

	if got := readFile(t, filepath.Join(dataDir, "data.txt")); got != "T | 0 | a\nE | 1 | b | mon | tue" {
		t.Errorf("data.txt = %q", got)
	}

	var out2 bytes.Buffer
	errOut.Reset()
	if code := run(context.Background(), args, strings.NewReader("list\n"), &out2, &errOut); code != 0 {
		t.Fatalf("second run() = %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out2.String(), "1. [T][ ] a\n2. [E][X] b (from: mon to: tue)") {
		t.Errorf("second session list:\n%s", out2.String())
	}
	if !strings.Contains(errOut.String(), "count=2") {
		t.Errorf("stderr = %q, want load log with count=2", errOut.String())
	}
}

func Test_run_MalformedLinesSkipped(t *testing.T) {
	dir := isolate(t)
	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "data.txt"), []byte("T | 0 | ok\nX | 0 | bad\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-data-dir", dataDir}, strings.NewReader("list\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d", code)
	}
	if !strings.Contains(stdout.String(), "1. [T][ ] ok") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "skipping malformed task") {
		t.Errorf("stderr = %q, want malformed-line warning", stderr.String())
	}
}

func Test_run_StorageUnavailableKeepsRunning(t *testing.T) {
	dir := isolate(t)
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-plain", "-data-dir", filepath.Join(blocker, "data")}
	code := run(context.Background(), args, strings.NewReader("todo read book\nlist\nbye\n"), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("run() = %d, want 0\nstderr: %s", code, stderr.String())
	}
	for _, want := range []string{
		"added: [T][ ] read book",
		"couldn't save to disk though",
		"1. [T][ ] read book",
		"bye! see u soon",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q\ngot:\n%s", want, stdout.String())
		}
	}
	for _, want := range []string{"could not open storage", "starting empty"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q\ngot:\n%s", want, stderr.String())
		}
	}
}
