package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_OperationsOrder(t *testing.T) {
	plan := &Plan{
		Moves:    []Transfer{{Src: "/w/m", Dst: "/w/replaced"}},
		Copies:   []Transfer{{Src: "/w/c", Dst: "/w/c2"}},
		Creates:  []string{"/w/new"},
		Deletes:  []string{"/w/old", "/w/replaced"},
		Replaced: []string{"/w/replaced"},
	}

	assert.Equal(t, []Operation{
		{Type: OpDelete, Path: "/w/replaced"},
		{Type: OpCreate, Path: "/w/new"},
		{Type: OpCopy, Src: "/w/c", Path: "/w/c2"},
		{Type: OpMove, Src: "/w/m", Path: "/w/replaced"},
		{Type: OpDelete, Path: "/w/old"},
	}, plan.Operations())
}

func TestPlan_EmptyAndSummary(t *testing.T) {
	empty := &Plan{}
	assert.True(t, empty.Empty())
	assert.Equal(t, "no changes", empty.Summary())

	plan := &Plan{
		Moves:   []Transfer{{Src: "/a", Dst: "/b"}},
		Creates: []string{"/c", "/d"},
	}
	assert.False(t, plan.Empty())
	assert.Equal(t, "2 create, 1 move", plan.Summary())
}

func TestPlan_Destinations(t *testing.T) {
	plan := &Plan{
		Moves:   []Transfer{{Src: "/a", Dst: "/m"}},
		Copies:  []Transfer{{Src: "/a", Dst: "/c"}},
		Creates: []string{"/n"},
	}
	assert.Equal(t, []string{"/m", "/c", "/n"}, plan.Destinations())
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "move /w/a -> /w/b", Operation{Type: OpMove, Src: "/w/a", Path: "/w/b"}.String())
	assert.Equal(t, "delete /w/a/", Operation{Type: OpDelete, Path: "/w/a/"}.String())
}
