package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestColorize(t *testing.T) {
	orig := noColor
	defer func() { noColor = orig }()

	noColor = false
	got := colorize(colorGreen, "hello")
	if !strings.HasPrefix(got, colorGreen) || !strings.HasSuffix(got, colorReset) {
		t.Errorf("colorize = %q, want ANSI wrapped", got)
	}

	noColor = true
	if got := colorize(colorGreen, "hello"); got != "hello" {
		t.Errorf("colorize with noColor = %q, want plain text", got)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := pidFilePath(t.TempDir())

	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}

	pid, err := readPIDFile(path)
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}

	removePIDFile(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("PID file still exists after removal")
	}
}

func TestReadPIDFileMissing(t *testing.T) {
	if _, err := readPIDFile(filepath.Join(t.TempDir(), "solace.pid")); err == nil {
		t.Error("expected error for missing PID file")
	}
}

func TestReadPIDFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solace.pid")
	if err := os.WriteFile(path, []byte("not a pid\n"), 0o644); err != nil {
		t.Fatalf("writing garbage: %v", err)
	}
	if _, err := readPIDFile(path); err == nil {
		t.Error("expected error for non-numeric PID file")
	}
}
