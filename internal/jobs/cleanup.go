// Package jobs runs scheduled maintenance inside the API process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cleaner evicts stale question cache rows and reports how many went.
type Cleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

// CleanupRecorder receives the number of rows removed by each run.
type CleanupRecorder interface {
	CacheRowsDeleted(n int64)
}

const runTimeout = 5 * time.Minute

// CacheCleanupJob runs Cleaner on a cron schedule such as "0 3 * * *".
type CacheCleanupJob struct {
	cleaner  Cleaner
	rec      CleanupRecorder
	schedule string
	log      *zap.SugaredLogger
	cron     *cron.Cron
}

func NewCacheCleanupJob(cleaner Cleaner, rec CleanupRecorder, schedule string, log *zap.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cleaner:  cleaner,
		rec:      rec,
		schedule: schedule,
		log:      log.Sugar(),
		cron:     cron.New(),
	}
}

// Start schedules the job. It returns an error for an invalid schedule.
func (j *CacheCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := j.RunOnce(ctx); err != nil {
			j.log.Errorw("question cache cleanup failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule cache cleanup %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.log.Infow("question cache cleanup scheduled", "schedule", j.schedule)
	return nil
}

// Stop waits for a running cleanup to finish or ctx to expire.
func (j *CacheCleanupJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.log.Warnw("question cache cleanup still running at shutdown")
	}
}

func (j *CacheCleanupJob) RunOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := j.cleaner.Cleanup(ctx)
	if err != nil {
		return 0, err
	}
	if j.rec != nil {
		j.rec.CacheRowsDeleted(n)
	}
	j.log.Infow("question cache cleanup finished", "deleted", n, "duration", time.Since(start))
	return n, nil
}
