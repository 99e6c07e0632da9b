package store

import (
	"errors"
	"strings"
	"sync"

	"tableflip.dev/contentcal/pkg/entry"
)

// Store is the in-memory entry collection for one session. It is the only
// mutable shared resource of the calendar; values handed out are clones.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry.Entry
}

// NewStore returns a store seeded with clones of the given entries.
func NewStore(entries ...*entry.Entry) *Store {
	s := &Store{entries: make(map[string]*entry.Entry, len(entries))}
	for _, e := range entries {
		if e == nil || e.ID == "" {
			continue
		}
		s.entries[e.ID] = e.Clone()
	}
	return s
}

// GetAll returns every entry, sorted by date and time slot.
func (s *Store) GetAll() []*entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	entry.Sort(out)
	return out
}

// Get returns a clone of the entry with the given id.
func (s *Store) Get(id string) (*entry.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Filter returns the entries matching f.
func (s *Store) Filter(f Filter) []*entry.Entry {
	all := s.GetAll()
	if f.IsZero() {
		return all
	}
	out := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Upsert inserts or replaces the entry by ID.
func (s *Store) Upsert(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("store: entry id required")
	}
	cp := e.Clone()
	cp.Conflicts = nil
	s.mu.Lock()
	s.entries[cp.ID] = cp
	s.mu.Unlock()
	return nil
}

// Remove deletes the entry; unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Replace swaps the whole snapshot, as done after a reload from persistence.
func (s *Store) Replace(entries []*entry.Entry) {
	next := make(map[string]*entry.Entry, len(entries))
	for _, e := range entries {
		if e == nil || e.ID == "" {
			continue
		}
		cp := e.Clone()
		cp.Conflicts = nil
		next[cp.ID] = cp
	}
	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
