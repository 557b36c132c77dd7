package autosave

import (
	"sync"
)

// Ledger accumulates field edits that have not yet been persisted, keyed by
// task id. Edits to the same task merge into a single entry with per-field
// last-writer-wins semantics. All operations are safe for concurrent use; a
// Merge racing a Drain lands in exactly one batch, never neither.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]map[string]any
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]map[string]any),
	}
}

// Merge combines fields into the pending entry for taskID, creating the entry
// if this is the first edit since the last drain. New values overwrite old
// ones field by field.
func (l *Ledger) Merge(taskID string, fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[taskID]
	if !ok {
		entry = make(map[string]any, len(fields))
		l.entries[taskID] = entry
	}
	for k, v := range fields {
		entry[k] = v
	}
}

// Drain atomically removes and returns all pending entries. The swap happens
// under the lock, so concurrent merges go either into the returned batch or
// into the fresh map for the next cycle.
func (l *Ledger) Drain() map[string]map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	drained := l.entries
	l.entries = make(map[string]map[string]any)
	return drained
}

// Peek returns a copy of the pending fields for taskID, or nil when the task
// has no queued edits. Used for read-side shadowing of derived values.
func (l *Ledger) Peek(taskID string) map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[taskID]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	return out
}

// Remove discards any pending entry for taskID, e.g. when the task is deleted
// before its edits flush.
func (l *Ledger) Remove(taskID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, taskID)
}

// IsEmpty reports whether the ledger holds no pending entries.
func (l *Ledger) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries) == 0
}

// Len returns the number of tasks with pending edits.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
