package report

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const runTimeout = 5 * time.Minute

// DailyRunner sends the report for one day.
type DailyRunner interface {
	Run(ctx context.Context, date time.Time) (*model.DailyReport, error)
}

// Scheduler runs yesterday's report on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	runner DailyRunner
	loc    *time.Location
	now    func() time.Time
	logger zerolog.Logger
}

// NewScheduler registers runner on schedule, a standard five-field cron
// expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, runner DailyRunner, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner: runner,
		loc:    loc,
		now:    time.Now,
		logger: logger.With().Str("component", "report_scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(schedule, s.runYesterday); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info().Time("next_run", e.Next).Msg("daily report scheduled")
	}
}

// Stop stops scheduling and waits for a running report, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("daily report still running at shutdown")
	}
}

func (s *Scheduler) runYesterday() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("daily report panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	date := Yesterday(s.now(), s.loc)
	if _, err := s.runner.Run(ctx, date); err != nil {
		s.logger.Error().Err(err).Str("date", date.Format(time.DateOnly)).Msg("daily report failed")
	}
}
