// Package localstore persists HiveCast collections as JSON documents under
// the data directory, one file per durable namespace. Every mutation is a
// full-collection replace: load, apply, write back. Loads fail soft — a
// missing or corrupt namespace is treated as empty and never surfaced to
// the caller.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Durable namespace keys. Each holds one JSON-serialized collection or
// singleton. The names are part of the external interface: exported data
// and pre-existing data directories depend on them.
const (
	NSProjects    = "hivecast_projects"
	NSEvents      = "hivecast_events"
	NSSettings    = "hivecast_settings"
	NSUser        = "hivecast_user"
	NSProfile     = "hivecast_profile"
	NSJobs        = "hivecast_jobs"
	NSFavorites   = "hivecast_favorites"
	NSConnections = "hivecast_connections"
)

var allNamespaces = []string{
	NSProjects, NSEvents, NSSettings, NSUser,
	NSProfile, NSJobs, NSFavorites, NSConnections,
}

// maxNamespaceBytes bounds a single namespace write, in the spirit of the
// browser storage quota the original interface lived under.
const maxNamespaceBytes = 5 << 20 // 5 MiB

// ErrQuotaExceeded is returned when a serialized namespace would exceed the
// per-namespace byte budget. The previous value is left untouched.
var ErrQuotaExceeded = errors.New("localstore: namespace quota exceeded")

// DB is a key-namespaced serialization layer over the data directory.
// A single mutex serializes all writers, restoring the run-to-completion
// guarantee the single-threaded original relied on.
type DB struct {
	dir string
	log *zap.Logger

	mu sync.Mutex
}

// Open prepares the data directory and returns a DB.
func Open(dir string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("localstore: create data dir: %w", err)
	}
	return &DB{dir: dir, log: log}, nil
}

// Dir returns the data directory the DB persists into.
func (db *DB) Dir() string {
	return db.dir
}

func (db *DB) path(key string) string {
	return filepath.Join(db.dir, key+".json")
}

// Load deserializes the namespace into v and reports whether a usable value
// was found. Missing or corrupt values yield false; callers fall back to
// the empty/default state. The underlying cause is logged, never returned.
func (db *DB) Load(key string, v any) bool {
	if err := db.read(key, v); err != nil {
		if !os.IsNotExist(err) {
			db.log.Warn("namespace unreadable, falling back to default",
				zap.String("namespace", key), zap.Error(err))
		}
		return false
	}
	return true
}

// read is the strict inner load: it returns the real error so the recovery
// policy stays visible at one boundary instead of being scattered.
func (db *DB) read(key string, v any) error {
	data, err := os.ReadFile(db.path(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SaveAll serializes v and replaces the namespace's stored value in full.
// The write is atomic from the caller's perspective: the value is staged to
// a temp file and renamed over the old one.
func (db *DB) SaveAll(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}
	if len(data) > maxNamespaceBytes {
		return fmt.Errorf("localstore: save %s (%d bytes): %w", key, len(data), ErrQuotaExceeded)
	}

	dest := db.path(key)
	tmp, err := os.CreateTemp(db.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("localstore: stage %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          //nolint:errcheck
		os.Remove(tmpName)   //nolint:errcheck
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("localstore: close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("localstore: replace %s: %w", key, err)
	}
	return nil
}

// Remove deletes a single namespace. Absent namespaces are not an error.
func (db *DB) Remove(key string) error {
	if err := os.Remove(db.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localstore: remove %s: %w", key, err)
	}
	return nil
}

// Wipe removes every durable namespace. This is the destructive bulk
// delete; it runs regardless of which backend is active for the session.
func (db *DB) Wipe() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, ns := range allNamespaces {
		if err := db.Remove(ns); err != nil {
			return err
		}
	}
	return nil
}

// newID returns a kind-prefixed opaque id, e.g. "project-4f9d…".
func newID(kind string) string {
	return kind + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
