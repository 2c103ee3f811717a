package alert

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"talentmatch/matching-service/internal/model"
)

// Scheduler wraps robfig/cron and fires the daily and weekly dispatch
// batches. Overlapping runs of the same frequency are prevented by cron's
// sequential job execution per entry; external triggers (the manual dispatch
// endpoint) are expected to be used for catch-up only.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *Dispatcher
	specDaily  string
	specWeekly string
}

// NewScheduler creates a Scheduler firing on the given cron specs.
func NewScheduler(dispatcher *Dispatcher, specDaily, specWeekly string) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cron.DefaultLogger)),
		dispatcher: dispatcher,
		specDaily:  specDaily,
		specWeekly: specWeekly,
	}
}

// Start registers both jobs and starts the cron engine.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.specDaily, func() {
		s.run(ctx, model.FrequencyDaily)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc daily: %w", err)
	}

	if _, err := s.cron.AddFunc(s.specWeekly, func() {
		s.run(ctx, model.FrequencyWeekly)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc weekly: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — daily: %q weekly: %q", s.specDaily, s.specWeekly)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running batch.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) run(ctx context.Context, freq model.Frequency) {
	log.Printf("[scheduler] %s dispatch triggered", freq)
	if err := s.dispatcher.DispatchPeriodic(ctx, freq, time.Now()); err != nil {
		log.Printf("[scheduler] %s dispatch error: %v", freq, err)
	}
}
