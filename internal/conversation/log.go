// Package conversation holds the append-only session log of user
// instructions and assistant replies.
package conversation

import (
	"sync"

	"github.com/jonathan/resume-studio/internal/types"
)

// Log is an ordered, append-only record of conversation entries. Entries are
// never edited or removed; the log lives for the process lifetime only.
type Log struct {
	mu      sync.RWMutex
	entries []types.ConversationEntry
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry to the end of the log.
func (l *Log) Append(role types.Role, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, types.ConversationEntry{Role: role, Text: text})
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []types.ConversationEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.ConversationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the most recent entry, or false when the log is empty.
func (l *Log) Last() (types.ConversationEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return types.ConversationEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
