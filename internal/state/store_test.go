package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_NextID(t *testing.T) {
	s := NewStore()

	assert.Equal(t, "/001", s.NextID())
	assert.Equal(t, "/002", s.NextID())
	assert.Equal(t, 3, s.Counter())
}

func TestStore_VisitedAndEdited(t *testing.T) {
	s := NewStore()

	_, ok := s.Visited("/a")
	assert.False(t, ok)

	lines := []string{"/000 ../", "/001 x.txt"}
	s.SetVisited("/a", lines)
	lines[1] = "mutated"

	got, ok := s.Visited("/a")
	require.True(t, ok)
	assert.Equal(t, []string{"/000 ../", "/001 x.txt"}, got, "store must keep its own copy")

	assert.False(t, s.HasEdits())
	s.SetEdited("/b", []string{"y"})
	s.SetEdited("/a", []string{"x"})
	assert.True(t, s.HasEdits())
	assert.Equal(t, []string{"/a", "/b"}, s.EditedKeys())

	s.ClearEdited("/a")
	assert.Equal(t, []string{"/b"}, s.EditedKeys())

	s.ClearAllEdited()
	assert.False(t, s.HasEdits())
	assert.Equal(t, []string{"/a"}, s.VisitedKeys())
}

func TestStore_OpenTracking(t *testing.T) {
	s := NewStore()

	s.MarkOpen("/a")
	s.MarkOpen("/a")
	s.MarkOpen("/b")
	assert.Equal(t, 3, s.OpenCount())
	assert.Equal(t, []string{"/a", "/b"}, s.OpenKeys())

	s.MarkClosed("/a")
	assert.Equal(t, 2, s.OpenCount())
	s.MarkClosed("/a")
	s.MarkClosed("/a")
	assert.Equal(t, []string{"/b"}, s.OpenKeys())
	assert.False(t, s.IsOpen("/a"))
	assert.True(t, s.IsOpen("/b"))
}

func TestStore_MaybeResetSession(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Store)
		wantReset bool
	}{
		{
			name:      "nothing open and no edits",
			setup:     func(s *Store) {},
			wantReset: true,
		},
		{
			name:      "buffer still open",
			setup:     func(s *Store) { s.MarkOpen("/a") },
			wantReset: false,
		},
		{
			name:      "edits pending",
			setup:     func(s *Store) { s.SetEdited("/a", []string{"x"}) },
			wantReset: false,
		},
		{
			name: "opened then closed",
			setup: func(s *Store) {
				s.MarkOpen("/a")
				s.MarkClosed("/a")
			},
			wantReset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.SetVisited("/a", []string{"/001 x"})
			s.NextID()
			s.NextID()
			tt.setup(s)

			assert.Equal(t, tt.wantReset, s.MaybeResetSession())
			if tt.wantReset {
				assert.Equal(t, 1, s.Counter())
				assert.Empty(t, s.VisitedKeys())
			} else {
				assert.Equal(t, 3, s.Counter())
				assert.NotEmpty(t, s.VisitedKeys())
			}
		})
	}
}
