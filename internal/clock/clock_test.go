package clock

import (
	"testing"
	"time"
)

func TestSystem(t *testing.T) {
	var c Clock = System{}

	before := time.Now()
	actual := c.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("System.Now() = %v, expected between %v and %v", actual, before, after)
	}
	if d := c.Since(before); d < 0 {
		t.Errorf("System.Since() = %v, expected non-negative", d)
	}
}

func TestStepping(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	c := NewStepping(start, 2*time.Second)

	tests := []struct {
		name string
		read func() time.Duration
		want time.Duration
	}{
		{"first reading is the start", func() time.Duration { return c.Now().Sub(start) }, 0},
		{"second reading is one step later", func() time.Duration { return c.Now().Sub(start) }, 2 * time.Second},
		{"since reads the clock", func() time.Duration { return c.Since(start) }, 4 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.read(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
