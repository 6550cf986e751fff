/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

// Package scheduler implements a poll driven recurring job scheduler. The
// caller repeatedly calls Tick, or lets Run do so, and every job whose
// schedule activated since the previous tick has its action invoked,
// catching up on missed occurrences up to each job's limit.
package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// DefaultTickInterval is the sleep duration recommended by TimeTillNextJob
// when there are no jobs to schedule against, and the floor used by Run
// when the recommendation is zero.
const DefaultTickInterval = 500 * time.Millisecond

// Options are the options for creating a new scheduler.
type Options struct {
	// Log is the logger to use for logging.
	Log logr.Logger

	// Clock is the clock used to get the current time. Used for manipulating
	// time in tests.
	Clock clock.Clock

	// Timezone is the timezone assigned to jobs as they are added, and the
	// reference for next occurrence predictions. Defaults to UTC.
	Timezone *time.Location
}

// Scheduler contains and executes the scheduled jobs. It is a single
// consumer primitive: it does no internal locking, so Add, Remove, Tick and
// the rest must not be called concurrently without external
// synchronization. Actions run synchronously on the ticking goroutine,
// never concurrently with each other.
type Scheduler struct {
	log      logr.Logger
	clock    clock.Clock
	timezone *time.Location

	jobs    map[uuid.UUID]*Job
	running atomic.Bool
}

// New creates a new scheduler with no jobs.
func New(opts Options) *Scheduler {
	log := opts.Log
	if log.GetSink() == nil {
		if zlog, err := zap.NewProduction(); err == nil {
			log = zapr.NewLogger(zlog).WithName("tick-cron")
		}
	}

	cl := opts.Clock
	if cl == nil {
		cl = clock.RealClock{}
	}

	timezone := opts.Timezone
	if timezone == nil {
		timezone = time.UTC
	}

	return &Scheduler{
		log:      log,
		clock:    cl,
		timezone: timezone,
		jobs:     make(map[uuid.UUID]*Job),
	}
}

// Add adds a job to the scheduler, pinning the scheduler's current timezone
// onto it, and returns the job's identifier. Add never fails; the schedule
// was already validated when it was parsed.
func (s *Scheduler) Add(job *Job) uuid.UUID {
	job.timezone = s.timezone
	s.jobs[job.id] = job

	s.log.V(3).Info("added job", "id", job.id)

	return job.id
}

// Remove removes the job with the given identifier from the scheduler.
// Returns false if no such job is stored; this is not an error.
func (s *Scheduler) Remove(id uuid.UUID) bool {
	if _, ok := s.jobs[id]; !ok {
		return false
	}

	delete(s.jobs, id)
	s.log.V(3).Info("removed job", "id", id)

	return true
}

// Tick advances every job to the current time, running any actions that
// are due. This is the only entry point that causes actions to run. It is
// recommended to sleep between invocations, either for a fixed interval of
// at least DefaultTickInterval or for the duration recommended by
// TimeTillNextJob.
func (s *Scheduler) Tick() {
	now := s.clock.Now()
	for _, job := range s.jobs {
		job.tick(now)
	}
}

// TimeTillNextJob returns the duration until the next job is supposed to
// run, recomputed fresh from the current time on every call. This can be
// used to sleep until then instead of waking up at a fixed interval. With
// no jobs stored it returns DefaultTickInterval as a guess.
//
// The nearest upcoming occurrence of each job is evaluated in the
// scheduler's timezone, not the job's own pinned timezone.
func (s *Scheduler) TimeTillNextJob() time.Duration {
	if len(s.jobs) == 0 {
		// Take a guess if there are no jobs.
		return DefaultTickInterval
	}

	now := s.clock.Now().In(s.timezone)

	var duration time.Duration
	for _, job := range s.jobs {
		next := job.schedule.Next(now)
		if next.IsZero() {
			continue
		}

		if d := next.Sub(now); duration == 0 || d < duration {
			duration = d
		}
	}

	if duration < 0 {
		duration = 0
	}

	return duration
}

// SetTimezone replaces the timezone assigned to jobs by future Add calls
// and used as the reference for TimeTillNextJob. Jobs already added keep
// the timezone they were pinned with. The scheduler defaults to UTC.
func (s *Scheduler) SetTimezone(timezone *time.Location) {
	s.timezone = timezone
}

// Run is a blocking function that ticks the scheduler until ctx is
// cancelled, sleeping between ticks for the duration recommended by
// TimeTillNextJob. While Run owns the scheduler no other goroutine may
// call its methods.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("scheduler already running")
	}
	defer s.running.Store(false)

	s.log.Info("starting scheduler")
	defer s.log.Info("scheduler stopped")

	for {
		s.Tick()

		next := s.TimeTillNextJob()
		if next == 0 {
			next = DefaultTickInterval
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(next):
		}
	}
}
