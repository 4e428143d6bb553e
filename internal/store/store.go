// Package store persists the full collection of user profiles. Two backends
// implement the same whole-snapshot contract: a single JSON file (the
// default, readable by earlier deployments) and SQLite.
package store

import (
	"fmt"

	"github.com/kalambet/solace/internal/profile"
)

// Snapshot is the full persisted collection of profiles keyed by user ID.
type Snapshot map[string]*profile.Profile

// Resolve returns the profile for id, creating an empty one in the snapshot
// on first reference. This is the single place get-or-create happens.
func (s Snapshot) Resolve(id string) *profile.Profile {
	if p, ok := s[id]; ok && p != nil {
		return p
	}
	p := &profile.Profile{}
	s[id] = p
	return p
}

// Store loads and saves the whole profile snapshot. Save must be atomic:
// a reader never observes a partially written snapshot, and a failed save
// leaves the previous state intact. A corrupt persisted state is non-fatal
// for Load (it logs a warning and yields an empty snapshot); a Save failure
// is returned to the caller.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Close() error
}

// Backend names accepted in configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open builds the configured Store backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dataDir)
	case BackendSQLite:
		return OpenSQLite(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (supported: %s, %s)", backend, BackendFile, BackendSQLite)
	}
}
