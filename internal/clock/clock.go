// Package clock abstracts time so apply timings are deterministic in tests.
package clock

import "time"

// Clock provides the current time and elapsed durations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// System implements Clock using the system time.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (System) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Stepping is a fake Clock that moves forward by a fixed step every time it
// is read.
type Stepping struct {
	current time.Time
	step    time.Duration
}

// NewStepping creates a Stepping clock starting at start.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{current: start, step: step}
}

// Now returns the current fake time, then advances it by one step.
func (c *Stepping) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Since returns the fake time elapsed since t, then advances by one step.
func (c *Stepping) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
