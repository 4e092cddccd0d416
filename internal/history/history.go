// Package history keeps a browser-style list of visited paths with a cursor.
//
// History is a value type. Push, Back, Forward and TruncateForward return a
// new History and never modify the receiver, so a snapshot taken before a
// transition stays valid afterwards.
package history

import (
	"errors"
	"fmt"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// ErrEmpty is returned by Restore when there are no entries.
var ErrEmpty = errors.New("history is empty")

// History is an ordered list of normalized paths and a cursor into it.
// The list always holds at least one entry and 0 <= cursor < len.
type History struct {
	entries []string
	cursor  int
}

// New creates a history holding only initial.
func New(initial string) History {
	return History{entries: []string{pathutil.Normalize(initial)}}
}

// Validate checks that entries and cursor form a usable history: at least
// one entry, the cursor in range and every entry normalized.
func Validate(entries []string, cursor int) error {
	if len(entries) == 0 {
		return ErrEmpty
	}
	if cursor < 0 || cursor >= len(entries) {
		return fmt.Errorf("cursor %d out of range [0, %d)", cursor, len(entries))
	}
	for i, e := range entries {
		if e != pathutil.Normalize(e) {
			return fmt.Errorf("entry %d is not a normalized path: %q", i, e)
		}
	}
	return nil
}

// Restore rebuilds a history from persisted entries and cursor.
func Restore(entries []string, cursor int) (History, error) {
	if err := Validate(entries, cursor); err != nil {
		return History{}, err
	}

	copied := make([]string, len(entries))
	copy(copied, entries)
	return History{entries: copied, cursor: cursor}, nil
}

// Push drops every entry after the cursor, appends path and moves the cursor
// onto it.
func (h History) Push(path string) History {
	next := make([]string, h.cursor+1, h.cursor+2)
	copy(next, h.entries[:h.cursor+1])
	next = append(next, pathutil.Normalize(path))
	return History{entries: next, cursor: len(next) - 1}
}

// TruncateForward drops every entry after the cursor.
func (h History) TruncateForward() History {
	if !h.CanForward() {
		return h
	}
	next := make([]string, h.cursor+1)
	copy(next, h.entries[:h.cursor+1])
	return History{entries: next, cursor: h.cursor}
}

// Back moves the cursor one entry towards the oldest entry.
// It reports false and returns h unchanged at the oldest entry.
func (h History) Back() (History, bool) {
	if !h.CanBack() {
		return h, false
	}
	return History{entries: h.entries, cursor: h.cursor - 1}, true
}

// Forward moves the cursor one entry towards the newest entry.
// It reports false and returns h unchanged at the newest entry.
func (h History) Forward() (History, bool) {
	if !h.CanForward() {
		return h, false
	}
	return History{entries: h.entries, cursor: h.cursor + 1}, true
}

// Current returns the entry under the cursor.
func (h History) Current() string {
	if len(h.entries) == 0 {
		return pathutil.Root
	}
	return h.entries[h.cursor]
}

// CanBack reports whether Back would move the cursor.
func (h History) CanBack() bool {
	return h.cursor > 0
}

// CanForward reports whether Forward would move the cursor.
func (h History) CanForward() bool {
	return h.cursor < len(h.entries)-1
}

// Cursor returns the index of the current entry.
func (h History) Cursor() int {
	return h.cursor
}

// Len returns the number of entries.
func (h History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
