package service

import "time"

// Clock provides the current time. Download timings go through it so tests
// can observe them deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// TestClock implements Clock for tests. Each call to Now returns FixedTime
// advanced by Step times the number of earlier calls.
type TestClock struct {
	FixedTime time.Time
	Step      time.Duration

	calls int
}

// Now returns the next reading.
func (t *TestClock) Now() time.Time {
	now := t.FixedTime.Add(time.Duration(t.calls) * t.Step)
	t.calls++
	return now
}
