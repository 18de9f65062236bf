// Package state holds the in-memory snapshot cache of directory listings.
//
// For every directory key the store keeps two snapshots:
//   - Visited: the last listing shown to the user, the "before" side of a diff
//   - Edited: the captured text of a modified buffer, the "after" side
//
// It also owns the session identifier counter and the count of open listing
// buffers, which together decide when a session can be reset.
//
// The store is not safe for concurrent use. The engine's event queue is its
// only caller.
package state
