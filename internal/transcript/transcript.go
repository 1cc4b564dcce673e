// Package transcript implements the append-only chat transcript.
//
// Entries are tagged as user-authored or assistant-authored and are never
// mutated or removed individually; the only destructive operation is clearing
// the whole transcript on logout. The transcript is touched only from the UI
// event loop and is deliberately not synchronized.
package transcript

import (
	"time"

	"github.com/google/uuid"
)

// Author tags who produced an entry.
type Author int

const (
	AuthorUser Author = iota
	AuthorAssistant
)

// String returns a human-readable name for the author
func (a Author) String() string {
	if a == AuthorUser {
		return "user"
	}
	return "assistant"
}

// Entry is a single rendered message. Immutable after creation.
type Entry struct {
	ID     string
	Author Author
	Text   string
	At     time.Time
}

// Transcript is an ordered, append-only sequence of entries.
type Transcript struct {
	entries []Entry
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append adds an entry to the end of the transcript and returns it.
func (t *Transcript) Append(author Author, text string) Entry {
	e := Entry{
		ID:     uuid.NewString(),
		Author: author,
		Text:   text,
		At:     time.Now(),
	}
	t.entries = append(t.entries, e)
	return e
}

// Entries returns a copy of the transcript in order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Clear removes every entry. Used on logout.
func (t *Transcript) Clear() {
	t.entries = nil
}
