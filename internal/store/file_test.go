package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kalambet/solace/internal/sentiment"
)

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %d profiles", len(snap))
	}
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := os.WriteFile(s.Path(), []byte("not valid json{{{"), 0o644); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load on corrupt file should not error, got %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot after corruption, got %d profiles", len(snap))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	snap := Snapshot{}
	p := snap.Resolve("user-1")
	p.Name = "Alice"
	p.ApplyUserTurn("worried about work deadlines", sentiment.Negative, now)
	p.ApplyAssistantTurn("That sounds stressful. Tell me more.", now)

	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loaded, ok := got["user-1"]
	if !ok {
		t.Fatal("profile user-1 missing after round trip")
	}
	if loaded.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", loaded.Name)
	}
	if len(loaded.Mood) != 1 || loaded.Mood[0] != sentiment.Negative {
		t.Errorf("Mood = %v", loaded.Mood)
	}
	if len(loaded.ChatHistory) != 2 {
		t.Fatalf("ChatHistory length = %d, want 2", len(loaded.ChatHistory))
	}
	if loaded.ChatHistory[0].Timestamp != "2025-06-01 12:00:00" {
		t.Errorf("Timestamp = %q", loaded.ChatHistory[0].Timestamp)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	snap := Snapshot{}
	snap.Resolve("a").Name = "First"
	if err := s.Save(snap); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	snap2 := Snapshot{}
	snap2.Resolve("b").Name = "Second"
	if err := s.Save(snap2); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := got["a"]; ok {
		t.Error("stale profile survived overwrite")
	}
	if got["b"] == nil || got["b"].Name != "Second" {
		t.Errorf("got %v", got)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	snap := Snapshot{}
	snap.Resolve("x")
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp_") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, fileName)); err != nil {
		t.Errorf("expected %s to exist: %v", fileName, err)
	}
}

func TestSnapshotResolve(t *testing.T) {
	snap := Snapshot{}

	p := snap.Resolve("new")
	if p == nil {
		t.Fatal("Resolve returned nil")
	}
	if len(snap) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(snap))
	}

	p.Name = "Bea"
	if again := snap.Resolve("new"); again != p {
		t.Error("second Resolve returned a different profile")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("postgres", t.TempDir()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenDefaultsToFile(t *testing.T) {
	s, err := Open("", t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", s)
	}
}
