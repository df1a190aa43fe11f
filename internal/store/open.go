package store

import (
	"log/slog"
	"path/filepath"
)

// Open performs the boot-time backend health check. It tries the LevelDB
// backend first and degrades permanently to the file backend when the open
// fails (path unwritable, another process holding the single-writer lock).
// The choice is made once per process and never retried per call.
func Open(dataDir string) (*Store, Backend, error) {
	lvl, err := OpenLevel(filepath.Join(dataDir, "progress.db"))
	if err == nil {
		slog.Info("progress store ready", "backend", lvl.Name())
		return NewStore(lvl), lvl, nil
	}
	slog.Warn("leveldb unavailable — falling back to local file for this process", "error", err)

	fb, ferr := NewFileBackend(dataDir)
	if ferr != nil {
		return nil, nil, ferr
	}
	slog.Info("progress store ready", "backend", fb.Name())
	return NewStore(fb), fb, nil
}
