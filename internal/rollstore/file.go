package rollstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore persists rolls as a single JSON object mapping user IDs to
// rolls (both encoded as decimal strings, matching encoding/json's map key
// representation). Thread-safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore that reads and writes the given path.
// The file and its parent directory are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the roll mapping from disk. A missing file is not an error and
// yields an empty mapping.
func (s *FileStore) Load(_ context.Context) (map[uint64]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[uint64]uint64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rollstore: read %q: %w", s.path, err)
	}

	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rollstore: parse %q: %w", s.path, err)
	}

	rolls := make(map[uint64]uint64, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rollstore: parse %q: bad user id %q: %w", s.path, k, err)
		}
		rolls[id] = v
	}
	return rolls, nil
}

// Save writes the full roll mapping to disk, replacing the previous file.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated mapping behind.
func (s *FileStore) Save(_ context.Context, rolls map[uint64]uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make(map[string]uint64, len(rolls))
	for id, roll := range rolls {
		raw[strconv.FormatUint(id, 10)] = roll
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("rollstore: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("rollstore: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".rolls-*.json")
	if err != nil {
		return fmt.Errorf("rollstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("rollstore: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rollstore: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rollstore: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rollstore: rename into place: %w", err)
	}
	return nil
}
