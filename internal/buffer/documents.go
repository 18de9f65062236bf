// Package buffer holds the text documents that listings are edited in.
//
// Documents is the in-memory document provider. The same type serves the
// editable listing buffers and the read-only preview buffers; the read-only
// flag decides whether user writes are accepted.
package buffer

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
)

var (
	// ErrReadOnly is returned when a user write targets a read-only provider.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNotFound is returned when no document exists for a key.
	ErrNotFound = errors.New("document not found")
)

// Host is the buffer contract the engine pushes text into.
type Host interface {
	// Text returns the current text of the buffer for key.
	Text(key string) (string, error)

	// SetText replaces the text of the buffer for key.
	SetText(key, text string) error
}

// Renamer is implemented by hosts that want renames routed through them, so
// that open editors can follow the renamed files.
type Renamer interface {
	Rename(oldpath, newpath string) error
}

// Documents is an in-memory set of text documents keyed by directory key.
type Documents struct {
	mu       sync.RWMutex
	docs     map[string]string
	readOnly bool
}

// NewDocuments creates a document provider.
func NewDocuments(readOnly bool) *Documents {
	return &Documents{
		docs:     make(map[string]string),
		readOnly: readOnly,
	}
}

// ReadOnly reports whether user writes are rejected.
func (d *Documents) ReadOnly() bool {
	return d.readOnly
}

// Load stores text produced by the engine, regardless of the read-only flag.
func (d *Documents) Load(key, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[key] = text
}

// Write stores text coming from the user.
func (d *Documents) Write(key, text string) error {
	if d.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	d.Load(key, text)
	return nil
}

// Read returns the text of a document.
func (d *Documents) Read(key string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.docs[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return text, nil
}

// Has reports whether a document exists for key.
func (d *Documents) Has(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.docs[key]
	return ok
}

// Delete removes a document. Deleting a missing document is not an error.
func (d *Documents) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, key)
}

// Keys returns the keys of every document, sorted.
func (d *Documents) Keys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	keys := lo.Keys(d.docs)
	slices.Sort(keys)
	return keys
}

// Text implements Host.
func (d *Documents) Text(key string) (string, error) {
	return d.Read(key)
}

// SetText implements Host. The engine is the caller, so the read-only flag
// does not apply.
func (d *Documents) SetText(key, text string) error {
	d.Load(key, text)
	return nil
}
