package store

import (
	"testing"
	"time"

	"github.com/kalambet/solace/internal/sentiment"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestMigrationsApplied(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(versions) == 0 {
		t.Fatal("no migrations applied")
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("migration versions not strictly ascending: %v", versions)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	s := openTestStore(t)

	before, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	// Running migrate again on an up-to-date schema must not reapply or fail.
	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	after, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("migration count changed from %d to %d", len(before), len(after))
	}
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %d profiles", len(snap))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := openTestStore(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	snap := Snapshot{}
	p := snap.Resolve("user-1")
	p.Name = "Alice"
	p.ApplyUserTurn("trouble sleeping lately", sentiment.Negative, now)
	p.ApplyAssistantTurn("I'm sorry to hear that.", now)

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
	if len(loaded.ChatHistory) != 2 {
		t.Errorf("ChatHistory length = %d, want 2", len(loaded.ChatHistory))
	}
	if len(loaded.Topics) == 0 {
		t.Error("Topics empty after round trip")
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

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
	if len(got) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(got))
	}
	if _, ok := got["a"]; ok {
		t.Error("stale profile survived overwrite")
	}
}

func TestSQLiteSkipsMalformedRow(t *testing.T) {
	s := openTestStore(t)

	snap := Snapshot{}
	snap.Resolve("good").Name = "Kept"
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := s.db.Exec(
		"INSERT INTO profiles (user_id, profile_json, updated_at) VALUES (?, ?, ?)",
		"bad", "{broken", "2025-06-01T12:00:00Z",
	); err != nil {
		t.Fatalf("inserting malformed row: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := got["bad"]; ok {
		t.Error("malformed row should have been skipped")
	}
	if got["good"] == nil || got["good"].Name != "Kept" {
		t.Errorf("valid row lost: %v", got)
	}
}
