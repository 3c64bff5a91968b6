package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

var _ Store = (*JSONStore)(nil)

// JSONStore persists a repository as a human-readable JSON file per repository in dir.
// It is not schema aware: renaming fields of an entity loses their data on the next Load.
// Only use it for local development and demos.
type JSONStore struct {
	dir string

	mu sync.Mutex
}

// NewJSONStore creates dir if it does not exist yet.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: could not create dir %s: %v", ErrStore, dir, err)
	}

	return &JSONStore{dir: dir, mu: sync.Mutex{}}, nil
}

// Store writes data to a temporary file first and renames it,
// so a crash never leaves a half written file behind.
func (s *JSONStore) Store(name string, data any) error {
	if data == nil {
		return nil
	}

	b, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

// Load decodes the file name into data.
// If the file does not exist, the returned error matches fs.ErrNotExist.
func (s *JSONStore) Load(name string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	if err = json.NewDecoder(f).Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}
