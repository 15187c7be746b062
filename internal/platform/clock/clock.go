// Package clock provides an injectable time source so every component
// that reasons about time can be driven deterministically in tests. Pure
// policy functions still take an explicit now parameter; the clock exists
// for the orchestration layer that has to obtain that now.
package clock

import "time"

// Clock is the minimal time source the services depend on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// System is a Clock backed by the wall clock, reporting UTC.
type System struct{}

// NewSystem creates a wall-clock Clock.
func NewSystem() System {
	return System{}
}

// Now implements Clock.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock frozen at a settable instant, for tests.
type Fixed struct {
	Time time.Time
}

// NewFixed creates a Clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{Time: t}
}

// Now implements Clock.
func (f *Fixed) Now() time.Time {
	return f.Time
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}
