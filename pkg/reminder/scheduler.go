package reminder

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/valentinrios/memora/pkg/logx"
)

// tickSpec matches the evaluation contract: the time gate compares whole
// minutes, so the scan must run at least once per minute.
const tickSpec = "@every 1m"

// Scheduler drives the engine on a fixed period. It is process-scoped: the
// container starts it once at startup and stops it on shutdown; there is no
// rescheduling API.
type Scheduler struct {
	engine *Engine
	cron   *cron.Cron
}

// NewScheduler creates the reminder scheduler around an engine.
func NewScheduler(engine *Engine) *Scheduler {
	return &Scheduler{
		engine: engine,
		cron:   cron.New(),
	}
}

// Start registers the tick job and begins the cron loop. The engine swallows
// its own per-event failures, so a tick can never kill the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(tickSpec, func() {
		s.engine.Tick(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logx.Infof("reminder scheduler started (%s)", tickSpec)
	return nil
}

// Stop halts the cron loop; a tick already in flight runs to completion.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logx.Info("reminder scheduler stopped")
}
