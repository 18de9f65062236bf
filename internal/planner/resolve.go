package planner

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/state"
)

// Resolve diffs every edited snapshot against the visited snapshots and
// returns the resulting plan, or nil when no edits are pending.
//
// An identifier that disappears from its own listing (or reappears there
// under another name) marks its original path for deletion. An identifier
// found at a different name or directory is a relocation: a move when its
// original path was deleted, a copy otherwise. Lines without a known
// identifier are creates. A path both created and deleted cancels out, and a
// delete inside a deleted directory is covered by the directory's delete.
func Resolve(store *state.Store, log *zap.Logger) *Plan {
	if !store.HasEdits() {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	originals := make(map[string]entry.Entry)
	for _, key := range store.VisitedKeys() {
		visited, _ := store.Visited(key)
		for _, e := range entry.DecodeAll(visited, key) {
			if e.Trackable() {
				originals[e.ID] = e
			}
		}
	}

	deletes := make(map[string]struct{})
	creates := make(map[string]struct{})
	var relocations []Transfer

	for _, key := range store.EditedKeys() {
		edited, _ := store.Edited(key)
		editedEntries := entry.DecodeAll(edited, key)

		kept := make(map[identity]struct{}, len(editedEntries))
		for _, e := range editedEntries {
			if e.Trackable() {
				kept[identity{id: e.ID, name: e.Name}] = struct{}{}
			}
		}

		visited, _ := store.Visited(key)
		for _, e := range entry.DecodeAll(visited, key) {
			if !e.Trackable() {
				continue
			}
			if _, ok := kept[identity{id: e.ID, name: e.Name}]; !ok {
				deletes[e.Path()] = struct{}{}
			}
		}

		for _, e := range editedEntries {
			if e.Blank() || e.ID == entry.Sentinel || e.IsParent() {
				continue
			}
			orig, ok := originals[e.ID]
			if !ok {
				creates[e.Path()] = struct{}{}
				continue
			}
			if orig.Name != e.Name || orig.Dir != e.Dir {
				relocations = append(relocations, Transfer{Src: orig.Path(), Dst: e.Path()})
			}
		}
	}

	plan := &Plan{}
	for _, r := range relocations {
		if _, ok := deletes[r.Src]; ok {
			delete(deletes, r.Src)
			plan.Moves = append(plan.Moves, r)
			continue
		}
		plan.Copies = append(plan.Copies, r)
	}

	for path := range creates {
		if _, ok := deletes[path]; ok {
			log.Debug("cancelling create and delete of the same path", zap.String("path", path))
			delete(creates, path)
			delete(deletes, path)
		}
	}

	plan.Creates = sortedKeys(creates)
	plan.Deletes = withoutNested(sortedKeys(deletes))

	log.Debug("resolved edits",
		zap.Int("moves", len(plan.Moves)),
		zap.Int("copies", len(plan.Copies)),
		zap.Int("creates", len(plan.Creates)),
		zap.Int("deletes", len(plan.Deletes)),
	)
	return plan
}

type identity struct {
	id   string
	name string
}

// withoutNested drops paths that lie inside a directory also in paths.
// paths must be sorted, so a directory precedes everything below it.
func withoutNested(paths []string) []string {
	var dirs []string
	return lo.Filter(paths, func(p string, _ int) bool {
		if lo.SomeBy(dirs, func(dir string) bool { return strings.HasPrefix(p, dir) }) {
			return false
		}
		if strings.HasSuffix(p, "/") {
			dirs = append(dirs, p)
		}
		return true
	})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := lo.Keys(set)
	slices.Sort(keys)
	return keys
}
