package state

import (
	"slices"

	"github.com/samber/lo"

	"github.com/danieljhkim/diredit/internal/entry"
)

// Store caches visited and edited snapshots per directory key.
type Store struct {
	visited map[string][]string
	edited  map[string][]string
	open    map[string]int
	counter int
}

// NewStore creates an empty Store with the identifier counter at 1.
func NewStore() *Store {
	return &Store{
		visited: make(map[string][]string),
		edited:  make(map[string][]string),
		open:    make(map[string]int),
		counter: 1,
	}
}

// Visited returns the last listing shown for key.
func (s *Store) Visited(key string) ([]string, bool) {
	lines, ok := s.visited[key]
	return lines, ok
}

// SetVisited records the listing shown for key.
func (s *Store) SetVisited(key string, lines []string) {
	s.visited[key] = slices.Clone(lines)
}

// VisitedKeys returns every key with a visited snapshot, sorted.
func (s *Store) VisitedKeys() []string {
	keys := lo.Keys(s.visited)
	slices.Sort(keys)
	return keys
}

// Edited returns the captured buffer lines for key.
func (s *Store) Edited(key string) ([]string, bool) {
	lines, ok := s.edited[key]
	return lines, ok
}

// SetEdited captures the current buffer lines for key.
func (s *Store) SetEdited(key string, lines []string) {
	s.edited[key] = slices.Clone(lines)
}

// ClearEdited drops the edited snapshot of one key.
func (s *Store) ClearEdited(key string) {
	delete(s.edited, key)
}

// ClearAllEdited drops every edited snapshot.
func (s *Store) ClearAllEdited() {
	clear(s.edited)
}

// EditedKeys returns every key with an edited snapshot, sorted.
func (s *Store) EditedKeys() []string {
	keys := lo.Keys(s.edited)
	slices.Sort(keys)
	return keys
}

// HasEdits reports whether any edited snapshot is pending.
func (s *Store) HasEdits() bool {
	return len(s.edited) > 0
}

// NextID returns the current counter as an identifier and advances it.
func (s *Store) NextID() string {
	id := entry.FormatID(s.counter)
	s.counter++
	return id
}

// Counter returns the value the next identifier will be minted from.
func (s *Store) Counter() int {
	return s.counter
}

// MarkOpen records that a buffer for key was opened.
func (s *Store) MarkOpen(key string) {
	s.open[key]++
}

// MarkClosed records that a buffer for key was closed.
func (s *Store) MarkClosed(key string) {
	if s.open[key] <= 1 {
		delete(s.open, key)
		return
	}
	s.open[key]--
}

// IsOpen reports whether at least one buffer for key is open.
func (s *Store) IsOpen(key string) bool {
	return s.open[key] > 0
}

// OpenKeys returns the keys of every open buffer, sorted.
func (s *Store) OpenKeys() []string {
	keys := lo.Keys(s.open)
	slices.Sort(keys)
	return keys
}

// OpenCount returns the number of open buffers.
func (s *Store) OpenCount() int {
	return lo.Sum(lo.Values(s.open))
}

// MaybeResetSession clears the visited cache and resets the counter when no
// buffers are open and no edits are pending. It reports whether it reset.
func (s *Store) MaybeResetSession() bool {
	if len(s.open) > 0 || s.HasEdits() {
		return false
	}
	clear(s.visited)
	s.counter = 1
	return true
}
