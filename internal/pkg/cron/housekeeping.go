package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
)

// ViewSweeper forgets punch views nobody touched for a while.
type ViewSweeper interface {
	SweepIdle(ctx context.Context, idleFor time.Duration) int
}

type HousekeepingJobs struct {
	appStateRepo appstate.AppStateRepository
	views        ViewSweeper
	staleTTL     time.Duration
	viewIdle     time.Duration
	now          func() time.Time
}

func NewHousekeepingJobs(appStateRepo appstate.AppStateRepository, views ViewSweeper, staleTTL, viewIdle time.Duration) *HousekeepingJobs {
	return &HousekeepingJobs{
		appStateRepo: appStateRepo,
		views:        views,
		staleTTL:     staleTTL,
		viewIdle:     viewIdle,
		now:          time.Now,
	}
}

func (j *HousekeepingJobs) RegisterJobs(scheduler *Scheduler, every time.Duration) {
	scheduler.AddJob(Job{Name: "prune_stale_app_state", Interval: every, RunOnStart: true, Fn: j.PruneStaleAppState})
	scheduler.AddJob(Job{Name: "sweep_idle_punch_views", Interval: j.viewIdle, Fn: j.SweepIdlePunchViews})
}

// PruneStaleAppState removes device state untouched for longer than the TTL
func (j *HousekeepingJobs) PruneStaleAppState(ctx context.Context) error {
	if j.staleTTL <= 0 {
		return nil
	}
	removed, err := j.appStateRepo.PruneBefore(ctx, j.now().Add(-j.staleTTL))
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Cron: pruned stale app state", "removed", removed)
	}
	return nil
}

// SweepIdlePunchViews stops cameras of abandoned punch screens
func (j *HousekeepingJobs) SweepIdlePunchViews(ctx context.Context) error {
	if n := j.views.SweepIdle(ctx, j.viewIdle); n > 0 {
		slog.Info("Cron: swept idle punch views", "count", n)
	}
	return nil
}
