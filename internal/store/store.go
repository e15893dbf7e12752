// Package store provides the in-memory record store and its flat-file
// snapshot persistence. A store is an explicit, passed-in instance with a
// defined lifetime; there is no process-wide record cache.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scholarnet/research-network-service/internal/domain"
)

// Store holds one immutable snapshot of paper records for the duration of a
// pipeline run. Records are loaded wholesale; the store never mutates them.
type Store struct {
	records []domain.PaperRecord
}

// New creates a store over the given records.
func New(records []domain.PaperRecord) *Store {
	return &Store{records: records}
}

// Load reads a record snapshot from a JSON file written by Save.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var records []domain.PaperRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	return New(records), nil
}

// Save writes the record snapshot as JSON. The write is atomic: data goes to
// a temporary file in the target directory first, then replaces the target
// with a rename.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}
	return nil
}

// Records returns the stored records. Callers must treat the returned slice
// as read-only.
func (s *Store) Records() []domain.PaperRecord {
	return s.records
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}
