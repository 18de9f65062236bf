package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEngine(t *testing.T, e *Engine) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = e.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return cancel
}

func TestQueue_DispatchSaveFlow(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	startEngine(t, e)
	ctx := context.Background()

	out, err := e.Dispatch(ctx, Event{Kind: Opened, Key: "."})
	require.NoError(t, err)
	assert.Equal(t, "/proj", out.Key)

	_, err = e.Dispatch(ctx, Event{Kind: Changed, Key: out.Key, Text: "/000 ../\n/001 sub/\n/002 c.txt\n/003 b.txt"})
	require.NoError(t, err)

	out, err = e.Dispatch(ctx, Event{Kind: Saved, Key: "/proj", Text: "/000 ../\n/001 sub/\n/002 c.txt\n/003 b.txt"})
	require.NoError(t, err)
	require.NotNil(t, out.Save)
	assert.True(t, out.Save.Report.OK())
	assert.True(t, exists(t, fs, "/proj/c.txt"))

	_, err = e.Dispatch(ctx, Event{Kind: Closed, Key: "/proj"})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Store().Counter())
}

func TestQueue_PostDeliversInOrder(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)

	outcomes := make(chan Outcome, 8)
	e.Subscribe(func(out Outcome) { outcomes <- out })
	startEngine(t, e)

	require.NoError(t, e.Post(Event{Kind: Opened, Key: "/proj"}))
	require.NoError(t, e.Post(Event{Kind: Saved, Key: "/proj", Text: "/000 ../\n/001 sub/\n/002 a.txt"}))
	require.NoError(t, e.Post(Event{Kind: Closed, Key: "/proj"}))

	var got []Outcome
	for len(got) < 3 {
		select {
		case out := <-outcomes:
			got = append(got, out)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d outcomes", len(got))
		}
	}

	assert.Equal(t, Opened, got[0].Event.Kind)
	assert.Equal(t, Saved, got[1].Event.Kind)
	require.NoError(t, got[1].Err)
	assert.Equal(t, []string{"/proj/b.txt"}, got[1].Save.Plan.Deletes)
	assert.Equal(t, Closed, got[2].Event.Kind)
	assert.False(t, exists(t, fs, "/proj/b.txt"))
}

func TestQueue_SubscriberSeesDispatchedEvents(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)

	var seen []EventKind
	e.Subscribe(func(out Outcome) { seen = append(seen, out.Event.Kind) })
	startEngine(t, e)
	ctx := context.Background()

	_, err := e.Dispatch(ctx, Event{Kind: Opened, Key: "/proj"})
	require.NoError(t, err)
	_, err = e.Dispatch(ctx, Event{Kind: Closed, Key: "/missing"})
	assert.ErrorIs(t, err, ErrNoBuffer)
	_, err = e.Dispatch(ctx, Event{Kind: Closed, Key: "/proj"})
	require.NoError(t, err)

	assert.Equal(t, []EventKind{Opened, Closed, Closed}, seen)
}

func TestQueue_ErrorsAreOutcomes(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	startEngine(t, e)

	out, err := e.Dispatch(context.Background(), Event{Kind: Saved, Key: "/proj", Text: ""})
	assert.ErrorIs(t, err, ErrNoBuffer)
	assert.ErrorIs(t, out.Err, ErrNoBuffer)

	_, err = e.Dispatch(context.Background(), Event{Kind: EventKind(42)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event(42)")
}

func TestQueue_StoppedEngineRejectsEvents(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	cancel := startEngine(t, e)

	cancel()
	require.Eventually(t, func() bool {
		return e.Post(Event{Kind: Opened, Key: "/proj"}) == ErrStopped
	}, time.Second, 10*time.Millisecond)

	_, err := e.Dispatch(context.Background(), Event{Kind: Opened, Key: "/proj"})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "saved", Saved.String())
	assert.Equal(t, "cursor_moved", CursorMoved.String())
	assert.Equal(t, "dir_changed", DirChanged.String())
}
