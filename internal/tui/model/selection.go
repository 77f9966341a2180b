package model

import "sync"

// Selection tracks which stream paths are marked in the streams view.
type Selection struct {
	mu    sync.RWMutex
	names map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{names: make(map[string]bool)}
}

// Toggle flips the selection state of one path.
func (s *Selection) Toggle(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names[name] {
		delete(s.names, name)
	} else {
		s.names[name] = true
	}
}

// SelectAll marks every given path.
func (s *Selection) SelectAll(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		s.names[n] = true
	}
}

// Deselect unmarks one path.
func (s *Selection) Deselect(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.names, name)
}

// Clear unmarks everything.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.names)
}

// Has reports whether a path is marked.
func (s *Selection) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[name]
}

// Count returns how many paths are marked.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}
