package config

import "sync/atomic"

// Store holds the active configuration behind an atomic pointer so a
// reload swaps the whole table at once. Evaluations in flight keep the
// snapshot they started with; nothing is mutated in place.
type Store struct {
	current atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the active configuration snapshot.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Swap atomically replaces the active configuration.
func (s *Store) Swap(cfg *Config) {
	s.current.Store(cfg)
}
