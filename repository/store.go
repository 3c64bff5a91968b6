package repository

import "errors"

var (
	ErrStore = errors.New("could not store repository data")
	ErrLoad  = errors.New("could not load repository data")
)

// Store persists the collection of a MemoryRepository as a whole.
// It is called after every successful write with the complete data.
type Store interface {
	Store(name string, data any) error
	Load(name string, data any) error
}

var _ Store = (*noopStore)(nil)

// noopStore keeps a MemoryRepository purely in memory.
type noopStore struct{}

func (noopStore) Store(_ string, _ any) error { return nil }

func (noopStore) Load(_ string, _ any) error { return nil }
