package planner

import (
	"fmt"

	"github.com/danieljhkim/diredit/internal/fsops"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

// ConflictChecker checks a plan for conflicts before it is applied.
type ConflictChecker struct {
	fs fsops.FS
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(fs fsops.FS) *ConflictChecker {
	return &ConflictChecker{fs: fs}
}

// Check walks every destination of the plan and records conflicts on it.
// A destination written twice is a duplicate. A destination already on disk
// is a conflict unless the same batch deletes it, in which case the delete is
// recorded in plan.Replaced and runs before anything else.
// Returns true if the plan is safe to apply.
func (c *ConflictChecker) Check(plan *Plan) bool {
	deleting := make(map[string]string, len(plan.Deletes))
	for _, path := range plan.Deletes {
		deleting[pathkey.Trim(path)] = path
	}

	plan.Replaced = nil
	seen := make(map[string]struct{})
	for _, dst := range plan.Destinations() {
		target := pathkey.Trim(dst)
		if _, dup := seen[target]; dup {
			plan.AddConflict(Conflict{
				Path:   dst,
				Kind:   ConflictDuplicate,
				Reason: "More than one entry resolves to this destination",
			})
			continue
		}
		seen[target] = struct{}{}

		exists, err := c.fs.Exists(dst)
		if err != nil {
			plan.AddConflict(Conflict{
				Path:   dst,
				Kind:   ConflictExists,
				Reason: fmt.Sprintf("Failed to check path: %v", err),
			})
			continue
		}
		if !exists {
			continue
		}
		if freed, ok := deleting[target]; ok {
			plan.Replaced = append(plan.Replaced, freed)
			continue
		}
		plan.AddConflict(Conflict{
			Path:   dst,
			Kind:   ConflictExists,
			Reason: "A file or directory already exists at destination",
		})
	}

	return !plan.HasConflicts()
}
