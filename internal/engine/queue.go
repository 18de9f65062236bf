package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// EventKind identifies a host event.
type EventKind int

const (
	// Opened asks for a listing buffer for Event.Key.
	Opened EventKind = iota
	// Changed carries the current text of a buffer.
	Changed
	// Saved carries the final text of a saved buffer.
	Saved
	// Closed reports that a buffer was closed.
	Closed
	// CursorMoved carries the line under the cursor.
	CursorMoved
	// DirChanged asks to change the working directory to Event.Key.
	DirChanged
)

func (k EventKind) String() string {
	switch k {
	case Opened:
		return "opened"
	case Changed:
		return "changed"
	case Saved:
		return "saved"
	case Closed:
		return "closed"
	case CursorMoved:
		return "cursor_moved"
	case DirChanged:
		return "dir_changed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a host event delivered through the queue.
type Event struct {
	Kind EventKind

	// Key is the buffer key, or the directory for Opened and DirChanged.
	Key string

	// Text is the buffer text for Changed and Saved.
	Text string

	// Line is the line under the cursor for CursorMoved.
	Line string
}

// Outcome is the result of handling one event.
type Outcome struct {
	Event Event

	// Key and Text are set for Opened.
	Key  string
	Text string

	// Save is set for Saved.
	Save *SaveResult

	// Preview is set for CursorMoved when the preview followed the cursor.
	Preview *Preview

	Err error
}

type task struct {
	ctx   context.Context
	event Event
	reply chan Outcome
}

// Subscribe registers fn to receive the outcome of every handled event,
// whether it was posted or dispatched. fn runs on the queue goroutine before
// a dispatched event's caller is released. It must be called before Run.
func (e *Engine) Subscribe(fn func(Outcome)) {
	e.outcomeFn = fn
}

// Post queues ev without waiting for it to be handled.
func (e *Engine) Post(ev Event) error {
	return e.enqueue(task{ctx: context.Background(), event: ev})
}

// Dispatch queues ev and waits for its outcome. Run must be running.
func (e *Engine) Dispatch(ctx context.Context, ev Event) (Outcome, error) {
	reply := make(chan Outcome, 1)
	if err := e.enqueue(task{ctx: ctx, event: ev, reply: reply}); err != nil {
		return Outcome{Event: ev, Err: err}, err
	}

	select {
	case out := <-reply:
		return out, out.Err
	case <-ctx.Done():
		return Outcome{Event: ev, Err: ctx.Err()}, ctx.Err()
	case <-e.done:
		return Outcome{Event: ev, Err: ErrStopped}, ErrStopped
	}
}

func (e *Engine) enqueue(t task) error {
	select {
	case <-e.done:
		return ErrStopped
	default:
	}

	select {
	case e.tasks <- t:
		return nil
	case <-e.done:
		return ErrStopped
	}
}

// Run handles queued events one at a time until ctx is cancelled. It must be
// called at most once. An event runs to completion, including any
// confirmation prompt, before the next one is taken from the queue.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-e.tasks:
			tctx := t.ctx
			if tctx == nil {
				tctx = ctx
			}
			out := e.handle(tctx, t.event)
			if out.Err != nil {
				e.log.Debug("event failed", zap.Stringer("event", t.event.Kind), zap.Error(out.Err))
			}
			if e.outcomeFn != nil {
				e.outcomeFn(out)
			}
			if t.reply != nil {
				t.reply <- out
			}
		}
	}
}

func (e *Engine) handle(ctx context.Context, ev Event) Outcome {
	out := Outcome{Event: ev}
	switch ev.Kind {
	case Opened:
		out.Key, out.Text, out.Err = e.Open(ev.Key)
	case Changed:
		out.Err = e.Change(ev.Key, ev.Text)
	case Saved:
		out.Save, out.Err = e.Save(ctx, ev.Key, ev.Text)
	case Closed:
		out.Err = e.Close(ev.Key)
	case CursorMoved:
		out.Preview, out.Err = e.cursorMoved(ev.Key, ev.Line)
	case DirChanged:
		out.Err = e.ChangeDir(ctx, ev.Key)
	default:
		out.Err = fmt.Errorf("unknown event kind: %s", ev.Kind)
	}
	return out
}
