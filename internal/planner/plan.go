package planner

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/danieljhkim/diredit/internal/pathkey"
)

// Plan is the set of filesystem operations implied by the edited listings.
// Paths are absolute key-form paths; directories end with "/".
type Plan struct {
	// Moves relocate an entry whose original line was removed.
	Moves []Transfer

	// Copies duplicate an entry whose original line is still present.
	Copies []Transfer

	// Creates are new entries typed without an identifier, sorted.
	Creates []string

	// Deletes are entries whose lines were removed, sorted.
	Deletes []string

	// Replaced lists the deletes that free a path another operation writes.
	// It is filled in by the conflict checker.
	Replaced []string

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict
}

// Transfer is a move or copy from Src to Dst.
type Transfer struct {
	Src string
	Dst string
}

// Operation is a single filesystem operation in execution order.
type Operation struct {
	// Type is the operation type: "create", "copy", "move", "delete"
	Type string

	// Src is the source path for copies and moves, empty otherwise.
	Src string

	// Path is the path the operation writes or removes.
	Path string
}

// Conflict represents a conflict detected during planning.
type Conflict struct {
	// Path is the destination path where the conflict was detected
	Path string

	// Kind is ConflictDuplicate or ConflictExists
	Kind string

	// Reason is a human-readable explanation of the conflict
	Reason string
}

// Operation type constants
const (
	OpCreate = "create"
	OpCopy   = "copy"
	OpMove   = "move"
	OpDelete = "delete"
)

// Conflict kind constants
const (
	ConflictDuplicate = "duplicate_destination"
	ConflictExists    = "exists"
)

// Empty reports whether the plan changes nothing.
func (p *Plan) Empty() bool {
	return len(p.Moves) == 0 && len(p.Copies) == 0 && len(p.Creates) == 0 && len(p.Deletes) == 0
}

// HasConflicts returns true if the plan has any conflicts.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddConflict adds a conflict to the plan.
func (p *Plan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// Destinations returns every path written by a move, copy or create, in
// that order.
func (p *Plan) Destinations() []string {
	dsts := make([]string, 0, len(p.Moves)+len(p.Copies)+len(p.Creates))
	for _, m := range p.Moves {
		dsts = append(dsts, m.Dst)
	}
	for _, c := range p.Copies {
		dsts = append(dsts, c.Dst)
	}
	return append(dsts, p.Creates...)
}

// Operations flattens the plan into execution order: deletes that free a
// destination, creates, copies, moves, then the remaining deletes.
func (p *Plan) Operations() []Operation {
	ops := make([]Operation, 0, len(p.Moves)+len(p.Copies)+len(p.Creates)+len(p.Deletes))

	for _, path := range p.Replaced {
		ops = append(ops, Operation{Type: OpDelete, Path: path})
	}
	for _, path := range p.Creates {
		ops = append(ops, Operation{Type: OpCreate, Path: path})
	}
	for _, c := range p.Copies {
		ops = append(ops, Operation{Type: OpCopy, Src: c.Src, Path: c.Dst})
	}
	for _, m := range p.Moves {
		ops = append(ops, Operation{Type: OpMove, Src: m.Src, Path: m.Dst})
	}
	for _, path := range lo.Without(p.Deletes, p.Replaced...) {
		ops = append(ops, Operation{Type: OpDelete, Path: path})
	}
	return ops
}

// Summary returns a short count of each operation kind.
func (p *Plan) Summary() string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(len(p.Creates), "create")
	add(len(p.Copies), "copy")
	add(len(p.Moves), "move")
	add(len(p.Deletes), "delete")
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// String renders an operation for display.
func (op Operation) String() string {
	switch op.Type {
	case OpCopy, OpMove:
		return fmt.Sprintf("%s %s -> %s", op.Type, pathkey.ToOS(op.Src), pathkey.ToOS(op.Path))
	default:
		return fmt.Sprintf("%s %s", op.Type, pathkey.ToOS(op.Path))
	}
}
