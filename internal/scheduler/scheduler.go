package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher rebuilds every tracker board
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Scheduler keeps the boards fresh: one refresh at start, then one per
// cron tick. Overlapping ticks are skipped while a refresh is running.
type Scheduler struct {
	spec      string
	refresher Refresher
	cron      *cron.Cron
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// NewScheduler creates a new scheduler instance
func NewScheduler(spec string, refresher Refresher) *Scheduler {
	return &Scheduler{
		spec:      spec,
		refresher: refresher,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
	}
}

// Start registers the refresh job, runs the initial refresh in the
// background and starts the cron scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.spec, func() {
		s.refresh(ctx, "scheduled")
	}); err != nil {
		return fmt.Errorf("failed to schedule board refresh: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh(ctx, "initial")
	}()

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Msg("Board refresh scheduled")

	return nil
}

// Stop stops the scheduler and waits for running refreshes to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		log.Info().Msg("Stopping scheduler...")
		<-s.cron.Stop().Done()
		s.wg.Wait()
		log.Info().Msg("Scheduler stopped")
	})
}

func (s *Scheduler) refresh(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	log.Info().Str("trigger", trigger).Msg("Running board refresh...")

	if err := s.refresher.RefreshAll(ctx); err != nil {
		log.Error().Err(err).Str("trigger", trigger).Msg("Board refresh failed")
		return
	}

	log.Info().
		Str("trigger", trigger).
		Dur("duration", time.Since(start)).
		Msg("Board refresh completed")
}
