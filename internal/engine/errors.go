package engine

import "errors"

var (
	// ErrConflict indicates the plan has conflicts and nothing was applied.
	ErrConflict = errors.New("conflict detected")

	// ErrNoChanges indicates there are no pending edits to plan.
	ErrNoChanges = errors.New("no changes pending")

	// ErrCancelled indicates the user declined the confirmation prompt.
	ErrCancelled = errors.New("cancelled")

	// ErrBusy indicates a save is awaiting confirmation.
	ErrBusy = errors.New("a save is awaiting confirmation")

	// ErrNoBuffer indicates no listing buffer is open for the directory.
	ErrNoBuffer = errors.New("no listing buffer open")

	// ErrNotDirectory indicates the path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNoEntry indicates the line does not name an entry.
	ErrNoEntry = errors.New("no entry on line")

	// ErrStaleListing indicates listing text was not produced by this session.
	ErrStaleListing = errors.New("listing does not match its directory")

	// ErrStopped indicates the event queue is no longer running.
	ErrStopped = errors.New("engine stopped")
)
