/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_After(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("yields ascending occurrences strictly after the given time", func(t *testing.T) {
		t.Parallel()

		var got []time.Time
		for occurrence := range After(Every(time.Minute), now) {
			got = append(got, occurrence)
			if len(got) == 3 {
				break
			}
		}

		assert.Equal(t, []time.Time{
			now.Add(time.Minute),
			now.Add(2 * time.Minute),
			now.Add(3 * time.Minute),
		}, got)
	})

	t.Run("ends when the schedule returns a zero time", func(t *testing.T) {
		t.Parallel()

		last := now.Add(time.Hour)
		exhausted := scheduleFn(func(t time.Time) time.Time {
			if t.Before(last) {
				return last
			}
			return time.Time{}
		})

		var got []time.Time
		for occurrence := range After(exhausted, now) {
			got = append(got, occurrence)
		}

		assert.Equal(t, []time.Time{last}, got)
	})

	t.Run("early break stops enumeration", func(t *testing.T) {
		t.Parallel()

		var calls int
		counting := scheduleFn(func(t time.Time) time.Time {
			calls++
			return t.Add(time.Second)
		})

		for range After(counting, now) {
			break
		}

		assert.Equal(t, 1, calls)
	})
}

type scheduleFn func(time.Time) time.Time

func (fn scheduleFn) Next(t time.Time) time.Time {
	return fn(t)
}
