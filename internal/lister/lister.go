// Package lister materializes directory listings as entry lines.
package lister

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/fsops"
	"github.com/danieljhkim/diredit/internal/pathkey"
	"github.com/danieljhkim/diredit/internal/state"
)

// Lister reads directories and keeps the visited snapshots in the store
// current. It is the only writer of the visited side.
type Lister struct {
	fs    fsops.FS
	store *state.Store
	log   *zap.Logger
}

// New creates a Lister.
func New(fs fsops.FS, store *state.Store, log *zap.Logger) *Lister {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lister{fs: fs, store: store, log: log}
}

// Text returns the listing of key joined into buffer text.
func (l *Lister) Text(key string, preview bool) (string, error) {
	lines, err := l.List(key, preview)
	if err != nil {
		return "", err
	}
	return entry.JoinLines(lines), nil
}

// List returns the lines to show for key.
//
// Unsaved edits for key win over the disk. While edits are pending anywhere,
// a cached listing is returned instead of re-reading the disk so identifiers
// stay put mid-edit. Otherwise the directory is read and reconciled against
// its previous listing: names seen before keep their line (and identifier),
// new names get a fresh identifier, or the sentinel when preview is set.
// Preview listings are not cached.
func (l *Lister) List(key string, preview bool) ([]string, error) {
	if edited, ok := l.store.Edited(key); ok {
		l.log.Debug("listing from edited snapshot", zap.String("dir", key))
		return edited, nil
	}

	previous, hasPrevious := l.store.Visited(key)
	if hasPrevious && l.store.HasEdits() {
		l.log.Debug("listing from visited cache while edits are pending", zap.String("dir", key))
		return previous, nil
	}

	children, err := l.fs.ReadDir(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", key, err)
	}
	sortEntries(children)

	known := make(map[string]string, len(previous))
	for _, e := range entry.DecodeAll(previous, key) {
		if e.Trackable() {
			known[e.Name] = e.Line()
		}
	}

	lines := make([]string, 0, len(children)+1)
	if !pathkey.IsRoot(key) {
		lines = append(lines, entry.ParentLine)
	}

	minted := 0
	for _, child := range children {
		name := child.Name
		if child.IsDir {
			name += "/"
		}
		if line, ok := known[name]; ok {
			lines = append(lines, line)
			continue
		}
		if preview {
			lines = append(lines, entry.Encode(entry.Sentinel, name))
			continue
		}
		lines = append(lines, entry.Encode(l.store.NextID(), name))
		minted++
	}

	if !preview {
		l.store.SetVisited(key, lines)
	}
	l.log.Debug("listed directory",
		zap.String("dir", key),
		zap.Int("entries", len(children)),
		zap.Int("minted", minted),
		zap.Bool("preview", preview),
	)
	return lines, nil
}

// sortEntries orders directories before files and files by name using a
// byte-wise comparison. Directories keep the order the disk returned them in.
func sortEntries(children []fsops.DirEntry) {
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		if a.IsDir {
			return false
		}
		return a.Name < b.Name
	})
}
