/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dapr/kit/ptr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/diagridio/go-tick-cron/rhythm"
	"github.com/diagridio/go-tick-cron/scheduler"
)

func main() {
	zlog, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	log := zapr.NewLogger(zlog)

	sched := scheduler.New(scheduler.Options{
		Log: log,
	})

	every10, err := rhythm.Parse("0/10 * * * * *")
	if err != nil {
		panic(err)
	}
	sched.Add(scheduler.NewJob(every10, func() {
		log.Info("I get executed every 10th second!")
	}))

	sched.Add(scheduler.NewJob(rhythm.Every(4*time.Second), func() {
		log.Info("I get executed every 4 seconds!")
	}))

	// Backfill the last tick so the hourly job catches up on the runs it
	// missed over the last 3 hours.
	hourly := scheduler.NewJob(rhythm.Every(time.Hour), func() {
		log.Info("I get executed every hour!")
	})
	hourly.LimitMissedRuns(0)
	hourly.SetLastTick(ptr.Of(time.Now().Add(-3 * time.Hour)))
	sched.Add(hourly)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		panic(err)
	}
}
