package engine

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

// Open opens a listing buffer for dir, resolved against the working
// directory, and returns its key and text. Opening an already open
// directory adds another reference to it.
func (e *Engine) Open(dir string) (string, string, error) {
	key := resolveKey(dir, e.cwd)
	if err := e.requireDir(key); err != nil {
		return "", "", err
	}

	text, err := e.lister.Text(key, false)
	if err != nil {
		return "", "", err
	}
	e.store.MarkOpen(key)
	e.pushText(key, text)

	e.log.Debug("opened listing", zap.String("dir", key), zap.Int("open", e.store.OpenCount()))
	return key, text, nil
}

// Change records the current text of an open buffer. Text that matches the
// last listing clears the buffer's edited snapshot.
func (e *Engine) Change(key, text string) error {
	if e.confirming.Load() {
		return ErrBusy
	}
	if !e.store.IsOpen(key) {
		return fmt.Errorf("%w: %s", ErrNoBuffer, key)
	}
	if err := e.buffers.Write(key, text); err != nil {
		return err
	}

	lines := entry.SplitLines(text)
	if visited, ok := e.store.Visited(key); ok && slices.Equal(visited, lines) {
		e.store.ClearEdited(key)
		return nil
	}
	e.store.SetEdited(key, lines)
	return nil
}

// CheckListing checks that text is an edit of the listing open for key
// rather than one printed by another session. Identifiers are only
// meaningful within the session that handed them out, so a listing that
// keeps entries but none of the directory's own identifiers is rejected.
// Lines pasted from other listings keep their identifiers and are allowed.
func (e *Engine) CheckListing(key, text string) error {
	visited, ok := e.store.Visited(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoBuffer, key)
	}

	own := make(map[string]struct{}, len(visited))
	for _, ent := range entry.DecodeAll(visited, key) {
		if ent.Trackable() {
			own[ent.ID] = struct{}{}
		}
	}
	if len(own) == 0 {
		return nil
	}

	tracked := false
	for _, ent := range entry.DecodeAll(entry.SplitLines(text), key) {
		if !ent.Trackable() {
			continue
		}
		if _, ok := own[ent.ID]; ok {
			return nil
		}
		tracked = true
	}
	if tracked {
		return fmt.Errorf("%w: %s", ErrStaleListing, key)
	}
	return nil
}

// Close releases one reference to the buffer for key. When the last
// reference goes, its unsaved edits are discarded and the session is reset
// if nothing else is open.
func (e *Engine) Close(key string) error {
	if !e.store.IsOpen(key) {
		return fmt.Errorf("%w: %s", ErrNoBuffer, key)
	}
	e.store.MarkClosed(key)
	if e.store.IsOpen(key) {
		return nil
	}

	e.dropBuffer(key)
	if e.store.MaybeResetSession() {
		e.log.Debug("session reset")
	}
	return nil
}

// closeBuffer releases every reference to key.
func (e *Engine) closeBuffer(key string) {
	for e.store.IsOpen(key) {
		e.store.MarkClosed(key)
	}
	e.dropBuffer(key)
}

func (e *Engine) dropBuffer(key string) {
	e.store.ClearEdited(key)
	e.buffers.Delete(key)
	if e.preview != nil && pathkey.Dir(e.preview.Path) == key {
		e.ClosePreview()
	}
}

// Select resolves the line under the cursor in the buffer for key to the
// path it names. Directories end with "/"; the parent line resolves to the
// parent directory.
func (e *Engine) Select(key, line string) (string, error) {
	ent := entry.Decode(line, key)
	if ent.Blank() {
		return "", ErrNoEntry
	}
	if ent.IsParent() {
		if ent.Name == "." || ent.Name == "./" {
			return pathkey.Join(key, ""), nil
		}
		return pathkey.Join(pathkey.Parent(key), ""), nil
	}
	return ent.Path(), nil
}

// Parent opens the parent directory of key and returns its key and text.
func (e *Engine) Parent(key string) (string, string, error) {
	return e.Open(pathkey.Parent(key))
}

// ChangeDir changes the working directory. Pending edits are discarded
// only after the user confirms; declining keeps the current directory.
func (e *Engine) ChangeDir(ctx context.Context, dir string) error {
	key := resolveKey(dir, e.cwd)
	if err := e.requireDir(key); err != nil {
		return err
	}

	if e.store.HasEdits() {
		ok, err := e.confirm(ctx, "Discard unsaved changes?", e.store.EditedKeys())
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
		e.store.ClearAllEdited()
		e.refreshOpen()
	}

	e.log.Debug("changed directory", zap.String("from", e.cwd), zap.String("to", key))
	e.cwd = key
	return nil
}

// requireDir checks that key names an existing directory.
func (e *Engine) requireDir(key string) error {
	info, err := e.fs.Stat(key)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", key, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, key)
	}
	return nil
}

// confirm asks the prompter. Without a prompter every question is answered
// yes. Change and Save are rejected with ErrBusy until it returns.
func (e *Engine) confirm(ctx context.Context, message string, details []string) (bool, error) {
	if e.prompt == nil {
		return true, nil
	}
	e.confirming.Store(true)
	defer e.confirming.Store(false)

	ok, err := e.prompt.Confirm(ctx, message, details)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}
