package geo

import "sync/atomic"

// Store holds the current Registry and swaps in a fresh one on reload. The
// Registry itself never mutates; hot reload (SIGHUP) builds a new one from
// disk and replaces the pointer, so in-flight resolves keep a consistent view.
type Store struct {
	dir string
	reg atomic.Pointer[Registry]
}

// NewStore creates a store for the given refdata directory without loading.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load builds a Registry from the store's directory and installs it. On error
// the previously installed registry stays in place.
func (s *Store) Load() error {
	reg, err := LoadRegistry(s.dir)
	if err != nil {
		return err
	}
	s.reg.Store(reg)
	return nil
}

// Get returns the currently installed registry, or nil before the first
// successful Load.
func (s *Store) Get() *Registry {
	return s.reg.Load()
}
