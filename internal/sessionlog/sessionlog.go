// Package sessionlog keeps the per-session interaction history. Logs live in
// process memory and flush out-of-band to a durable sink — on a timer, or when
// a session is explicitly cleared. The request path only ever appends; a slow
// or failing sink never blocks message handling.
//
// Design constraints:
//   - Access to a given session's entry list is mutex-serialized; Append is safe
//     to call concurrently with the periodic flush.
//   - Flushing is best-effort. A failed flush logs and keeps the in-memory
//     entries so the next cycle retries them.
//   - Clear persists first, then empties — session history is never dropped
//     without a flush attempt.
package sessionlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultFlushInterval is the period of the background flush loop.
const DefaultFlushInterval = 300 * time.Second

// Entry is one user/assistant exchange.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	UserInput string    `json:"user_input"`
	Response  string    `json:"response"`
}

// sessionDoc is the shape persisted per flush.
type sessionDoc struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Logs      []Entry   `json:"logs"`
}

// Sink receives serialized session documents. The store backends satisfy this.
type Sink interface {
	Persist(sessionID string, doc []byte) error
}

// Log is the process-scoped session map. Create one at startup and inject it;
// a fresh instance per test gives full isolation.
type Log struct {
	mu       sync.Mutex
	sessions map[string][]Entry
	dirty    map[string]bool
	sink     Sink
	interval time.Duration
}

// New creates a Log flushing to sink. A nil sink disables durable persistence;
// entries then live in memory only.
func New(sink Sink) *Log {
	return &Log{
		sessions: make(map[string][]Entry),
		dirty:    make(map[string]bool),
		sink:     sink,
		interval: DefaultFlushInterval,
	}
}

// SetFlushInterval overrides the background flush period. Call before Run.
func (l *Log) SetFlushInterval(d time.Duration) {
	l.interval = d
}

// Append records one exchange for sessionID.
func (l *Log) Append(sessionID, userInput, response string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[sessionID] = append(l.sessions[sessionID], Entry{
		Timestamp: time.Now().UTC(),
		UserInput: userInput,
		Response:  response,
	})
	l.dirty[sessionID] = true
}

// Logs returns the entries for sessionID in append order. The slice is a copy.
func (l *Log) Logs(sessionID string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.sessions[sessionID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Clear persists sessionID's entries to the sink, then empties them in memory.
func (l *Log) Clear(sessionID string) {
	l.FlushToDurable(sessionID)
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, sessionID)
	delete(l.dirty, sessionID)
}

// FlushToDurable writes sessionID's current entries as one document to the
// sink. Skips silently when the session is empty or no sink is configured.
func (l *Log) FlushToDurable(sessionID string) {
	l.mu.Lock()
	entries := make([]Entry, len(l.sessions[sessionID]))
	copy(entries, l.sessions[sessionID])
	l.mu.Unlock()

	if len(entries) == 0 || l.sink == nil {
		return
	}
	doc, err := json.Marshal(sessionDoc{
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
		Logs:      entries,
	})
	if err != nil {
		slog.Error("session flush: marshal", "session", sessionID, "error", err)
		return
	}
	if err := l.sink.Persist(sessionID, doc); err != nil {
		slog.Error("session flush failed — keeping entries for next cycle", "session", sessionID, "error", err)
		return
	}
	l.mu.Lock()
	delete(l.dirty, sessionID)
	l.mu.Unlock()
}

// Run flushes every dirty session on a fixed interval until ctx is cancelled,
// with one final flush pass on shutdown. Runs independently of request
// handling; start it as a goroutine.
func (l *Log) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.flushDirty()
			return
		case <-ticker.C:
			l.flushDirty()
		}
	}
}

func (l *Log) flushDirty() {
	l.mu.Lock()
	ids := make([]string, 0, len(l.dirty))
	for id := range l.dirty {
		ids = append(ids, id)
	}
	l.mu.Unlock()
	for _, id := range ids {
		l.FlushToDurable(id)
	}
}
