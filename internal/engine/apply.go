package engine

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/buffer"
	"github.com/danieljhkim/diredit/internal/pathkey"
	"github.com/danieljhkim/diredit/internal/planner"
)

// applyPlan runs every operation of plan in execution order. A failing
// operation is recorded in the report and the remaining operations still run.
func (e *Engine) applyPlan(plan *planner.Plan) *ApplyReport {
	start := e.clock.Now()
	report := &ApplyReport{
		Applied: []planner.Operation{},
		Failed:  []OpError{},
	}

	for _, op := range plan.Operations() {
		if err := e.executeOperation(op); err != nil {
			e.log.Warn("operation failed", zap.Stringer("op", op), zap.Error(err))
			report.Failed = append(report.Failed, OpError{Op: op, Err: err})
			continue
		}
		e.log.Debug("operation applied", zap.Stringer("op", op))
		report.Applied = append(report.Applied, op)
	}

	report.Duration = e.clock.Since(start)
	return report
}

// executeOperation dispatches one operation to its handler.
func (e *Engine) executeOperation(op planner.Operation) error {
	switch op.Type {
	case planner.OpDelete:
		return e.executeDelete(op)
	case planner.OpCreate:
		return e.executeCreate(op)
	case planner.OpCopy:
		return e.executeCopy(op)
	case planner.OpMove:
		return e.executeMove(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// executeDelete removes a file, or a directory and everything below it.
func (e *Engine) executeDelete(op planner.Operation) error {
	exists, err := e.fs.Exists(op.Path)
	if err != nil {
		return fmt.Errorf("failed to check if path exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("failed to delete: %w", os.ErrNotExist)
	}
	if err := e.fs.RemoveTree(op.Path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return nil
}

// executeCreate creates an empty file or a directory, along with any missing
// intermediate directories.
func (e *Engine) executeCreate(op planner.Operation) error {
	if pathkey.IsDir(op.Path) {
		if err := e.fs.MkdirAll(op.Path); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return nil
	}

	exists, err := e.fs.Exists(op.Path)
	if err != nil {
		return fmt.Errorf("failed to check if path exists: %w", err)
	}
	if exists {
		return fmt.Errorf("failed to create file: %w", os.ErrExist)
	}
	if err := e.fs.MkdirAll(pathkey.Dir(op.Path)); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := e.fs.WriteFile(op.Path, nil); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	return nil
}

// executeCopy copies a file's bytes. Copying a directory creates an empty
// directory at the destination; its contents are not copied.
func (e *Engine) executeCopy(op planner.Operation) error {
	if pathkey.IsDir(op.Path) {
		if err := e.fs.MkdirAll(op.Path); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return nil
	}
	if err := e.fs.CopyFile(op.Src, op.Path); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}

	return nil
}

// executeMove renames src to the destination after making sure the
// destination's parent exists. With use_workspace_edit set, hosts that
// implement buffer.Renamer perform the rename themselves.
func (e *Engine) executeMove(op planner.Operation) error {
	if err := e.fs.MkdirAll(pathkey.Dir(op.Path)); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	src, dst := pathkey.Trim(op.Src), pathkey.Trim(op.Path)
	if renamer, ok := e.host.(buffer.Renamer); ok && e.settings.UseWorkspaceEdit {
		if err := renamer.Rename(src, dst); err != nil {
			return fmt.Errorf("host rename failed: %w", err)
		}
		return nil
	}
	if err := e.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}

	return nil
}

// refreshOpen re-lists every open directory buffer from disk and pushes the
// new text to the host. Buffers whose directory can no longer be listed are
// closed and returned.
func (e *Engine) refreshOpen() []string {
	var closed []string
	for _, key := range e.store.OpenKeys() {
		text, err := e.lister.Text(key, false)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				e.log.Info("closing buffer for vanished directory", zap.String("dir", key))
			} else {
				e.log.Warn("failed to refresh listing", zap.String("dir", key), zap.Error(err))
			}
			e.closeBuffer(key)
			closed = append(closed, key)
			continue
		}
		e.pushText(key, text)
	}
	return closed
}
