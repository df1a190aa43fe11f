package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend is the local fallback: the progress set lives in one JSON file,
// flushed session logs append to a JSONL file next to it.
type FileBackend struct {
	progressPath string
	sessionsPath string
	mu           sync.Mutex // serializes the rename dance and JSONL appends
}

// NewFileBackend creates a FileBackend rooted at dataDir. The directory is
// created if absent.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileBackend{
		progressPath: filepath.Join(dataDir, "progress.json"),
		sessionsPath: filepath.Join(dataDir, "sessions.jsonl"),
	}, nil
}

// LoadAll reads the progress file. A missing file is an empty set, not an error.
func (b *FileBackend) LoadAll() (ProgressSet, error) {
	raw, err := os.ReadFile(b.progressPath)
	if os.IsNotExist(err) {
		return ProgressSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read progress file: %w", err)
	}
	var set ProgressSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("store: decode progress file: %w", err)
	}
	if set == nil {
		set = ProgressSet{}
	}
	return set, nil
}

// Save overwrites the progress file with set. Write-temp-then-rename so a crash
// mid-write never leaves a torn file.
func (b *FileBackend) Save(set ProgressSet) error {
	raw, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode progress file: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	tmp := b.progressPath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("store: write progress file: %w", err)
	}
	if err := os.Rename(tmp, b.progressPath); err != nil {
		return fmt.Errorf("store: replace progress file: %w", err)
	}
	return nil
}

// Persist appends one session-log document as a JSONL line.
func (b *FileBackend) Persist(sessionID string, doc []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, err := os.OpenFile(b.sessionsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("store: open sessions file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\n", doc); err != nil {
		return fmt.Errorf("store: persist session %s: %w", sessionID, err)
	}
	return nil
}

// Name identifies the backend in logs.
func (b *FileBackend) Name() string { return "file" }
