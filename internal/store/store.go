// Package store persists the set of completed schedule days. Two interchangeable
// backends sit behind one contract: a LevelDB keyed store and a plain JSON file.
// The backend is chosen once at boot (see Open); it never changes per call.
//
// Design constraints:
//   - Save is a full overwrite of the persisted set, not an incremental patch.
//   - Read-modify-write cycles are last-write-wins. A mutex serializes writes that
//     go through one Store instance; concurrent writers through separate processes
//     can still lose an update. Acceptable at this system's scale, but a real
//     limitation, not a guarantee.
//   - The store does not validate that a day exists in the schedule; callers do.
package store

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// CompletionRecord is the persisted evidence that one day was marked done.
// Topic is a snapshot of the day's focus at completion time.
type CompletionRecord struct {
	CompletedAt time.Time `json:"completed_at"`
	Topic       string    `json:"topic"`
}

// ProgressSet maps string day keys to completion records. String keys match the
// persisted document shape.
type ProgressSet map[string]CompletionRecord

// Backend is the persistence contract both backends satisfy.
//
// Expectations:
//   - LoadAll returns an empty set (not an error) when no data exists yet
//   - Save atomically replaces the entire persisted set
//   - Persist appends one serialized session-log document (used by sessionlog)
type Backend interface {
	LoadAll() (ProgressSet, error)
	Save(ProgressSet) error
	Persist(sessionID string, doc []byte) error
	Name() string
}

// Store wraps a Backend with the mark/unmark/clear operations.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// NewStore creates a Store over an already-selected backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// CompletedDays returns the current persisted set.
func (s *Store) CompletedDays() (ProgressSet, error) {
	return s.backend.LoadAll()
}

// MarkCompleted records day as done with the given topic snapshot, overwriting
// any earlier record for the same day.
func (s *Store) MarkCompleted(day int, topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, err := s.backend.LoadAll()
	if err != nil {
		return fmt.Errorf("store: load before mark: %w", err)
	}
	set[strconv.Itoa(day)] = CompletionRecord{CompletedAt: time.Now().UTC(), Topic: topic}
	if err := s.backend.Save(set); err != nil {
		return fmt.Errorf("store: mark day %d: %w", day, err)
	}
	return nil
}

// UnmarkCompleted deletes the record for day. Absent day is a no-op, not an error.
func (s *Store) UnmarkCompleted(day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, err := s.backend.LoadAll()
	if err != nil {
		return fmt.Errorf("store: load before unmark: %w", err)
	}
	key := strconv.Itoa(day)
	if _, ok := set[key]; !ok {
		return nil
	}
	delete(set, key)
	if err := s.backend.Save(set); err != nil {
		return fmt.Errorf("store: unmark day %d: %w", day, err)
	}
	return nil
}

// Clear replaces the persisted set with an empty one.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ProgressSet{}); err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}
