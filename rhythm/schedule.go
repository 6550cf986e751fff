/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

// Package rhythm describes when a recurring job is due. It is the boundary
// to the recurrence-expression evaluator: the scheduler only ever consumes
// the Schedule interface and the occurrence sequences derived from it.
package rhythm

import (
	"iter"
	"time"
)

// The Schedule describes a job's duty cycle.
type Schedule interface {
	// Return the next activation time, later than the given time.
	// Next is invoked initially, and then each time the job is run.
	// A zero time means the schedule will never activate again.
	Next(time.Time) time.Time
}

// After returns the ascending sequence of activation times of the schedule
// strictly after t. The sequence is lazy and unbounded for schedules that
// never exhaust; it ends when the schedule returns a zero time.
func After(s Schedule, t time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			t = s.Next(t)
			if t.IsZero() || !yield(t) {
				return
			}
		}
	}
}

// Upcoming returns the ascending sequence of activation times of the
// schedule starting from the current wall-clock time in loc.
func Upcoming(s Schedule, loc *time.Location) iter.Seq[time.Time] {
	return After(s, time.Now().In(loc))
}
