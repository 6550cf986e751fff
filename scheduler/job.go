/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/diagridio/go-tick-cron/rhythm"
)

// Job couples a schedule with the action to run when the schedule
// activates. A Job belongs to at most one Scheduler at a time; its timezone
// is pinned from the scheduler when it is added.
type Job struct {
	id       uuid.UUID
	schedule rhythm.Schedule
	run      func()

	// lastTick is the time of the previous advance, valid only when primed
	// is true. An unprimed job has never been advanced and will not fire for
	// any occurrence before its first tick.
	lastTick time.Time
	primed   bool

	limitMissedRuns uint64
	timezone        *time.Location
}

// NewJob creates a new job which invokes run whenever the schedule says an
// occurrence is due.
//
//	// Run at second 0 of the 15th minute of the 6th, 8th, and 10th hour of
//	// any day in March and June that is a Friday.
//	s, _ := rhythm.Parse("0 15 6,8,10 * Mar,Jun Fri")
//	scheduler.NewJob(s, func() { fmt.Println("I have a complex schedule...") })
func NewJob(schedule rhythm.Schedule, run func()) *Job {
	return &Job{
		id:              uuid.New(),
		schedule:        schedule,
		run:             run,
		limitMissedRuns: 1,
		timezone:        time.UTC,
	}
}

// ID returns the unique identifier of the job, used for removal from a
// Scheduler.
func (j *Job) ID() uuid.UUID {
	return j.id
}

// LimitMissedRuns sets the limit for missed runs in the case of delayed
// ticks. Setting to 0 means unlimited.
func (j *Job) LimitMissedRuns(limit uint64) {
	j.limitMissedRuns = limit
}

// SetLastTick overrides the time of the previous advance to force
// re-running of missed occurrences. A nil last returns the job to the
// unprimed state, meaning the next tick will not fire.
func (j *Job) SetLastTick(last *time.Time) {
	if last == nil {
		j.lastTick = time.Time{}
		j.primed = false
		return
	}

	j.lastTick = *last
	j.primed = true
}

// tick advances the job to now. The first advance only primes the job.
// Every subsequent advance fires the action once per occurrence which fell
// between the previous advance and now, in ascending order, bounded by the
// missed runs limit. Occurrences beyond the limit are dropped, not
// deferred, as the previous advance marker always moves to now.
func (j *Job) tick(now time.Time) {
	now = now.In(j.timezone)

	if !j.primed {
		j.lastTick = now
		j.primed = true
		return
	}

	previous := j.lastTick
	j.lastTick = now

	var fired uint64
	for occurrence := range rhythm.After(j.schedule, previous) {
		if occurrence.After(now) {
			break
		}

		j.run()
		fired++

		if j.limitMissedRuns > 0 && fired >= j.limitMissedRuns {
			break
		}
	}
}
