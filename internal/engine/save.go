package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/planner"
)

// Algorithm steps:
// 1. Capture text as the edited snapshot for key
// 2. Resolve every edited snapshot against its visited snapshot
// 3. Check destinations for conflicts (abort before any mutation)
// 4. Confirm with the user (declining aborts with edits kept)
// 5. Apply operations in order, collecting per-operation failures
// 6. Clear edits, re-list open buffers and push them to the host
func (e *Engine) Save(ctx context.Context, key, text string) (*SaveResult, error) {
	if e.confirming.Load() {
		return nil, ErrBusy
	}
	if !e.store.IsOpen(key) {
		return nil, fmt.Errorf("%w: %s", ErrNoBuffer, key)
	}
	if err := e.buffers.Write(key, text); err != nil {
		return nil, err
	}
	e.store.SetEdited(key, entry.SplitLines(text))

	result := &SaveResult{Key: key}

	plan, err := e.Plan()
	if plan == nil {
		return nil, err
	}
	result.Plan = plan
	if err != nil {
		return result, err
	}

	if !plan.Empty() {
		ok, err := e.confirm(ctx, e.confirmMessage(plan), e.confirmDetails(plan))
		if err != nil {
			return result, err
		}
		if !ok {
			e.log.Debug("save cancelled", zap.String("dir", key))
			return result, ErrCancelled
		}
		result.Report = e.applyPlan(plan)
		e.log.Info("applied plan",
			zap.String("dir", key),
			zap.Int("applied", len(result.Report.Applied)),
			zap.Int("failed", len(result.Report.Failed)),
			zap.Duration("duration", result.Report.Duration),
		)
	}

	e.store.ClearAllEdited()
	result.Closed = e.refreshOpen()
	if refreshed, err := e.buffers.Read(key); err == nil {
		result.Text = refreshed
	}
	return result, nil
}

// Plan resolves the pending edits and checks them for conflicts without
// touching the disk. A plan with conflicts is returned with ErrConflict.
func (e *Engine) Plan() (*planner.Plan, error) {
	plan := planner.Resolve(e.store, e.log.Named("planner"))
	if plan == nil {
		return nil, ErrNoChanges
	}

	if !planner.NewConflictChecker(e.fs).Check(plan) {
		return plan, fmt.Errorf("%w: %d conflicts detected", ErrConflict, len(plan.Conflicts))
	}
	return plan, nil
}

func (e *Engine) confirmMessage(plan *planner.Plan) string {
	if e.settings.AlternateConfirmation {
		return "Apply the following changes?"
	}
	return fmt.Sprintf("Apply changes (%s)?", plan.Summary())
}

// confirmDetails lists every operation when alternate_confirmation is set.
func (e *Engine) confirmDetails(plan *planner.Plan) []string {
	if !e.settings.AlternateConfirmation {
		return nil
	}
	ops := plan.Operations()
	details := make([]string, 0, len(ops))
	for _, op := range ops {
		details = append(details, op.String())
	}
	return details
}
