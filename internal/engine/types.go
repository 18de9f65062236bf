package engine

import (
	"fmt"
	"time"

	"github.com/danieljhkim/diredit/internal/planner"
)

// SaveResult represents the outcome of saving a listing buffer.
type SaveResult struct {
	// Key is the directory key of the saved buffer
	Key string

	// Plan is the resolved plan (conflicts included when the save was refused)
	Plan *planner.Plan

	// Report is nil unless the plan was applied
	Report *ApplyReport

	// Text is the refreshed listing of the saved directory
	Text string

	// Closed lists buffers closed because their directory no longer lists
	Closed []string
}

// ApplyReport records what happened to each operation of an applied plan.
type ApplyReport struct {
	// Applied is the list of operations that succeeded, in execution order
	Applied []planner.Operation

	// Failed is the list of operations that failed
	Failed []OpError

	// Duration is the wall time spent applying
	Duration time.Duration
}

// OK reports whether every operation succeeded.
func (r *ApplyReport) OK() bool {
	return len(r.Failed) == 0
}

// OpError is a failed operation and its cause.
type OpError struct {
	Op  planner.Operation
	Err error
}

func (e OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e OpError) Unwrap() error {
	return e.Err
}

// Preview is the single outstanding preview target.
type Preview struct {
	// Path is the key-form path being previewed
	Path string `json:"path"`

	// IsDir is true when Text is a listing rather than file content
	IsDir bool `json:"isDir"`

	// Text is the read-only preview content
	Text string `json:"text"`

	// Truncated is true when a file was longer than the preview limit
	Truncated bool `json:"truncated"`
}
