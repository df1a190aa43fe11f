package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDB key scheme — uses "|" as separator.
//
//	p|tracker              → ProgressSet JSON      (singleton progress document)
//	s|<session>|<rfc3339>  → session-log document  (one per flush)
const (
	keyProgress   = "p|tracker"
	prefixSession = "s|"
)

// LevelBackend is the durable keyed backend. LevelDB is single-writer; a second
// process opening the same path fails, which Open treats as a degrade signal.
type LevelBackend struct {
	db *leveldb.DB
}

// OpenLevel opens (or creates) a LevelDB database at dbPath.
func OpenLevel(dbPath string) (*LevelBackend, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open leveldb at %s: %w", dbPath, err)
	}
	return &LevelBackend{db: db}, nil
}

// LoadAll reads the singleton progress document. A missing document is an empty
// set, not an error.
func (b *LevelBackend) LoadAll() (ProgressSet, error) {
	raw, err := b.db.Get([]byte(keyProgress), nil)
	if err == leveldb.ErrNotFound {
		return ProgressSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read progress document: %w", err)
	}
	var set ProgressSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("store: decode progress document: %w", err)
	}
	if set == nil {
		set = ProgressSet{}
	}
	return set, nil
}

// Save overwrites the singleton progress document with set.
func (b *LevelBackend) Save(set ProgressSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("store: encode progress document: %w", err)
	}
	if err := b.db.Put([]byte(keyProgress), raw, nil); err != nil {
		return fmt.Errorf("store: write progress document: %w", err)
	}
	return nil
}

// Persist writes one session-log document under a timestamped session key.
func (b *LevelBackend) Persist(sessionID string, doc []byte) error {
	key := prefixSession + sessionID + "|" + time.Now().UTC().Format(time.RFC3339Nano)
	if err := b.db.Put([]byte(key), doc, nil); err != nil {
		return fmt.Errorf("store: persist session %s: %w", sessionID, err)
	}
	return nil
}

// Name identifies the backend in logs.
func (b *LevelBackend) Name() string { return "leveldb" }

// Close releases the database. Only the boot path holds the handle.
func (b *LevelBackend) Close() error { return b.db.Close() }
