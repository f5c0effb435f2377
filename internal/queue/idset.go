package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// IDSet is the persisted set of card ids the current user has submitted.
// The archive endpoint is not scoped per user, so the archive view filters
// by this set client-side. Append-only except for Clear; every mutation is
// written through to disk synchronously so a restart never diverges from
// memory.
//
// The on-disk format is a JSON array of numeric ids.
type IDSet struct {
	mu   sync.Mutex
	path string
	ids  map[int64]struct{}
}

// LoadIDSet reads the set from path, degrading to an empty set when the file
// is missing or unreadable.
func LoadIDSet(path string) *IDSet {
	set := &IDSet{path: path, ids: make(map[int64]struct{})}

	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return set
	}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

// Add records a card id and persists the set.
func (s *IDSet) Add(id int64) error {
	if id <= 0 {
		return errors.New("card id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return nil
	}
	s.ids[id] = struct{}{}
	return s.persistLocked()
}

// Contains reports whether the id is in the set.
func (s *IDSet) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the ids in ascending order.
func (s *IDSet) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot returns the set as a lookup map.
func (s *IDSet) Snapshot() map[int64]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make(map[int64]struct{}, len(s.ids))
	for id := range s.ids {
		dup[id] = struct{}{}
	}
	return dup
}

// Len returns the number of ids in the set.
func (s *IDSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Clear empties the set and persists the empty state.
func (s *IDSet) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{})
	return s.persistLocked()
}

func (s *IDSet) persistLocked() error {
	if s.path == "" {
		return nil
	}
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal ids: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write ids: %w", err)
	}
	return nil
}
