package cron

import (
	"context"
	"time"
)

// Pruner evicts expired entries from a cache.
type Pruner interface {
	Prune(ctx context.Context) error
}

type AttendanceSummaryJobs struct {
	cache    Pruner
	interval time.Duration
}

func NewAttendanceSummaryJobs(cache Pruner, interval time.Duration) *AttendanceSummaryJobs {
	return &AttendanceSummaryJobs{
		cache:    cache,
		interval: interval,
	}
}

func (j *AttendanceSummaryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_summary_cache", j.interval, j.PruneSummaryCache)
}

func (j *AttendanceSummaryJobs) PruneSummaryCache(ctx context.Context) error {
	return j.cache.Prune(ctx)
}
