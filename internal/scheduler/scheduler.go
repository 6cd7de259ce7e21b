package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sundries-services/sundries/internal/config"
	"github.com/sundries-services/sundries/internal/roster"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler runs the nightly roster sync. A run that is still in flight
// when the next tick fires is not doubled up; the tick is skipped.
type Scheduler struct {
	cron     *cron.Cron
	log      *zap.Logger
	syncer   roster.Syncer
	schedule string
	running  atomic.Bool
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Syncer roster.Syncer
}

func New(p Params) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		log:      p.Log.Named("scheduler"),
		syncer:   p.Syncer,
		schedule: p.Config.SyncSchedule,
	}
}

func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.log.Info("roster sync schedule disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runSync); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runSync() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("previous roster sync still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.syncer.Sync(ctx)
	if err != nil {
		s.log.Error("scheduled roster sync failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled roster sync finished",
		zap.Int("synced", result.Synced),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)
}
