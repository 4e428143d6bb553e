package store

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "user_data.json"

// FileStore keeps the snapshot in a single JSON file, rewritten in full on
// every save via write-then-rename so a crash mid-write leaves the previous
// valid file in place.
type FileStore struct {
	path string

	// Serializes saves so two writers cannot race on the temp file.
	mu sync.Mutex
}

// NewFileStore creates a FileStore under dataDir. The directory is created
// if missing; the file itself is created on first save.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, fileName)}, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing file yields an empty snapshot; a
// file that is not valid JSON yields an empty snapshot with a warning —
// resetting on corruption is accepted behavior, but never a silent one.
func (s *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("user data file is corrupted, resetting", "path", s.path, "error", err)
		return Snapshot{}, nil
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// Save serializes the full snapshot and replaces the backing file
// atomically.
func (s *FileStore) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling user data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing user data: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *FileStore) Close() error {
	return nil
}

// writeFileAtomic writes data to a temp file in the target's directory,
// fsyncs it, then renames it over the target path.
func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp_user_data_*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
