package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/diredit/internal/buffer"
)

func TestPreview_DirectoryUsesSentinel(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)

	p, err := e.Preview("/proj")
	require.NoError(t, err)
	assert.True(t, p.IsDir)
	assert.Equal(t, "/proj/", p.Path)
	assert.Equal(t, "/000 ../\n/000 sub/\n/000 a.txt\n/000 b.txt", p.Text)
	assert.Equal(t, 1, e.Store().Counter())

	_, ok := e.Store().Visited("/proj")
	assert.False(t, ok)

	doc, err := e.Previews().Read("/proj/")
	require.NoError(t, err)
	assert.Equal(t, p.Text, doc)
	assert.ErrorIs(t, e.Previews().Write("/proj/", "edited"), buffer.ErrReadOnly)
}

func TestPreview_DirectoryReusesKnownIdentifiers(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	_, _, err := e.Open("/proj")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs.Afero(), "/proj/c.txt", nil, 0644))

	p, err := e.Preview("/proj")
	require.NoError(t, err)
	assert.Equal(t, "/000 ../\n/001 sub/\n/002 a.txt\n/003 b.txt\n/000 c.txt", p.Text)
	assert.Equal(t, 4, e.Store().Counter())
}

func TestPreview_FileHead(t *testing.T) {
	long := strings.Repeat("line\n", previewMaxLines+10)
	fs := fixture(t, map[string]string{
		"/proj/short.txt": "hello\nworld\n",
		"/proj/long.txt":  long,
	})
	e, _ := newTestEngine(t, fs)

	p, err := e.Preview("short.txt")
	require.NoError(t, err)
	assert.False(t, p.IsDir)
	assert.False(t, p.Truncated)
	assert.Equal(t, "hello\nworld\n", p.Text)

	p, err = e.Preview("long.txt")
	require.NoError(t, err)
	assert.True(t, p.Truncated)
	assert.Len(t, strings.Split(p.Text, "\n"), previewMaxLines)

	assert.Equal(t, []string{"/proj/long.txt"}, e.Previews().Keys())
}

func TestPreview_ToggleAndClose(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)

	_, err := e.Preview("a.txt")
	require.NoError(t, err)
	require.NotNil(t, e.CurrentPreview())

	assert.False(t, e.TogglePreview())
	assert.Nil(t, e.CurrentPreview())
	assert.Empty(t, e.Previews().Keys())

	p, err := e.Preview("a.txt")
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.True(t, e.TogglePreview())
	_, err = e.Preview("a.txt")
	require.NoError(t, err)
	e.ClosePreview()
	assert.Nil(t, e.CurrentPreview())
}

func TestPreview_CursorWithoutPreview(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	startEngine(t, e)
	ctx := context.Background()

	_, err := e.Dispatch(ctx, Event{Kind: Opened, Key: "/proj"})
	require.NoError(t, err)

	// The cursor only drives a preview once one is open.
	out, err := e.Dispatch(ctx, Event{Kind: CursorMoved, Key: "/proj", Line: "/002 a.txt"})
	require.NoError(t, err)
	assert.Nil(t, out.Preview)
	assert.Empty(t, e.Previews().Keys())
}

func TestPreview_CursorMovedReplacesTarget(t *testing.T) {
	fs := projectFS(t)
	e, _ := newTestEngine(t, fs)
	_, _, err := e.Open("/proj")
	require.NoError(t, err)

	_, err = e.Preview("a.txt")
	require.NoError(t, err)

	p, err := e.cursorMoved("/proj", "/003 b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/proj/b.txt", p.Path)
	assert.Equal(t, "bravo", p.Text)
	assert.Equal(t, []string{"/proj/b.txt"}, e.Previews().Keys())

	p, err = e.cursorMoved("/proj", "/001 sub/")
	require.NoError(t, err)
	assert.True(t, p.IsDir)
	assert.Equal(t, "/000 ../", p.Text)

	require.NoError(t, e.Close("/proj"))
	assert.Nil(t, e.CurrentPreview())
}
