package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// backends returns one of each backend kind rooted in a fresh temp dir, so every
// contract test runs against both implementations.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	lvl, err := OpenLevel(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open leveldb: %v", err)
	}
	t.Cleanup(func() { lvl.Close() })
	fb, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	return map[string]Backend{"leveldb": lvl, "file": fb}
}

func TestLoadAll_EmptyWhenNoData(t *testing.T) {
	// A store with no persisted data returns an empty set, not an error
	for name, b := range backends(t) {
		set, err := b.LoadAll()
		if err != nil {
			t.Errorf("%s: LoadAll: %v", name, err)
		}
		if len(set) != 0 {
			t.Errorf("%s: expected empty set, got %v", name, set)
		}
	}
}

func TestMarkUnmark_RoundTripRestoresPriorState(t *testing.T) {
	// markCompleted(d) then unmarkCompleted(d) restores the prior set
	for name, b := range backends(t) {
		s := NewStore(b)
		if err := s.MarkCompleted(1, "Arrays"); err != nil {
			t.Fatalf("%s: mark 1: %v", name, err)
		}
		before, _ := s.CompletedDays()

		if err := s.MarkCompleted(2, "Strings"); err != nil {
			t.Fatalf("%s: mark 2: %v", name, err)
		}
		if err := s.UnmarkCompleted(2); err != nil {
			t.Fatalf("%s: unmark 2: %v", name, err)
		}
		after, _ := s.CompletedDays()
		if !reflect.DeepEqual(keys(before), keys(after)) {
			t.Errorf("%s: expected %v after round trip, got %v", name, keys(before), keys(after))
		}
	}
}

func TestUnmarkCompleted_AbsentDayIsNoOp(t *testing.T) {
	// Unmarking a day that was never marked is a no-op, not an error
	for name, b := range backends(t) {
		s := NewStore(b)
		if err := s.UnmarkCompleted(42); err != nil {
			t.Errorf("%s: expected no-op, got %v", name, err)
		}
	}
}

func TestClear_ThenLoadAllIsEmpty(t *testing.T) {
	// clear() followed by loadAll() returns an empty set regardless of prior state
	for name, b := range backends(t) {
		s := NewStore(b)
		for day := 1; day <= 3; day++ {
			if err := s.MarkCompleted(day, "Topic"); err != nil {
				t.Fatalf("%s: mark %d: %v", name, day, err)
			}
		}
		if err := s.Clear(); err != nil {
			t.Fatalf("%s: clear: %v", name, err)
		}
		set, err := s.CompletedDays()
		if err != nil {
			t.Fatalf("%s: load after clear: %v", name, err)
		}
		if len(set) != 0 {
			t.Errorf("%s: expected empty set after clear, got %v", name, set)
		}
	}
}

func TestMarkCompleted_RecordsTopicSnapshot(t *testing.T) {
	// The record keeps the topic snapshot and a completion timestamp
	for name, b := range backends(t) {
		s := NewStore(b)
		if err := s.MarkCompleted(5, "Dynamic Programming"); err != nil {
			t.Fatalf("%s: mark: %v", name, err)
		}
		set, _ := s.CompletedDays()
		rec, ok := set["5"]
		if !ok {
			t.Fatalf("%s: day 5 missing from set", name)
		}
		if rec.Topic != "Dynamic Programming" {
			t.Errorf("%s: expected topic snapshot, got %q", name, rec.Topic)
		}
		if rec.CompletedAt.IsZero() {
			t.Errorf("%s: expected non-zero completion timestamp", name)
		}
	}
}

func TestFileBackend_RoundTripsFullRecords(t *testing.T) {
	// The persisted file round-trips the full map including metadata
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := NewStore(fb)
	if err := s.MarkCompleted(1, "Graphs"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// Reopen from disk through a fresh backend.
	fb2, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	set, err := fb2.LoadAll()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if set["1"].Topic != "Graphs" {
		t.Errorf("expected metadata to survive reload, got %+v", set["1"])
	}
}

func TestPersist_FileBackendAppendsJSONL(t *testing.T) {
	// Session documents append as one JSON line each
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	doc := []byte(`{"session_id":"abc","logs":[]}`)
	if err := fb.Persist("abc", doc); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := fb.Persist("abc", doc); err != nil {
		t.Fatalf("persist again: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "sessions.jsonl"))
	if err != nil {
		t.Fatalf("read sessions file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &parsed); err != nil {
		t.Errorf("line is not valid JSON: %v", err)
	}
}

func TestOpen_FallsBackToFileWhenLevelDBHeld(t *testing.T) {
	// A held LevelDB lock degrades Open to the file backend for the process
	dir := t.TempDir()
	lvl, err := OpenLevel(filepath.Join(dir, "progress.db"))
	if err != nil {
		t.Fatalf("pre-hold leveldb: %v", err)
	}
	defer lvl.Close()

	_, backend, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if backend.Name() != "file" {
		t.Errorf("expected file fallback, got %q", backend.Name())
	}
}

func keys(set ProgressSet) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
