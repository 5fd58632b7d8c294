package simulation

import "sync"

// Store holds the current run behind a lock so HTTP handlers can read it
// while a re-run swaps it out. Runs themselves are immutable after Execute.
type Store struct {
	mu  sync.RWMutex
	run *Run
}

func NewStore(run *Run) *Store {
	return &Store{run: run}
}

func (s *Store) Current() *Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run
}

func (s *Store) Swap(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = run
}
