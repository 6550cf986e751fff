/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

package fake

import "time"

// Fake is a fake Schedule implementation for testing. By default it never
// activates.
type Fake struct {
	nextFn func(time.Time) time.Time
}

func New() *Fake {
	return &Fake{
		nextFn: func(time.Time) time.Time {
			return time.Time{}
		},
	}
}

func (f *Fake) WithNext(fn func(time.Time) time.Time) *Fake {
	f.nextFn = fn
	return f
}

// WithOccurrences scripts the schedule to activate at exactly the given
// ascending times.
func (f *Fake) WithOccurrences(occurrences ...time.Time) *Fake {
	f.nextFn = func(t time.Time) time.Time {
		for _, occurrence := range occurrences {
			if occurrence.After(t) {
				return occurrence
			}
		}
		return time.Time{}
	}
	return f
}

func (f *Fake) Next(t time.Time) time.Time {
	return f.nextFn(t)
}
