// Package scheduler runs the due-date reminder sweep on a daily and an
// intraday cadence.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/pkg/metrics"
)

const defaultSweepTimeout = 5 * time.Minute

// Sweeper performs one reminder sweep.
type Sweeper interface {
	CheckDueReminders(ctx context.Context) (domain.SweepResult, error)
}

// Options controls when sweeps run.
type Options struct {
	// DailyHour is the local hour (0-23) of the daily sweep; negative disables it.
	DailyHour int
	// Interval is the intraday cadence; zero disables it.
	Interval time.Duration
	// Location is the timezone DailyHour is expressed in. Defaults to UTC.
	Location *time.Location
	// SweepTimeout bounds a single sweep. Defaults to 5 minutes.
	SweepTimeout time.Duration
}

// Scheduler owns the sweep timers. Each instance keeps its own state, so
// several can coexist (in tests, for example).
type Scheduler struct {
	sweeper Sweeper
	opts    Options
	log     zerolog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// sweepMu serialises sweeps; scheduled ticks that find it held are dropped.
	sweepMu sync.Mutex
}

// New creates a stopped Scheduler.
func New(sweeper Sweeper, opts Options, log zerolog.Logger) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.SweepTimeout <= 0 {
		opts.SweepTimeout = defaultSweepTimeout
	}
	if opts.DailyHour > 23 {
		opts.DailyHour = -1
	}
	return &Scheduler{sweeper: sweeper, opts: opts, log: log}
}

// Start schedules the sweeps. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	if s.opts.DailyHour >= 0 {
		s.wg.Add(1)
		go s.runDaily(ctx)
	}
	if s.opts.Interval > 0 {
		s.wg.Add(1)
		go s.runInterval(ctx)
	}

	s.log.Info().
		Int("daily_hour", s.opts.DailyHour).
		Dur("interval", s.opts.Interval).
		Str("location", s.opts.Location.String()).
		Msg("reminder scheduler started")
}

// Stop cancels all scheduled work and waits for it to finish. The scheduler
// can be started again afterwards. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.cancel = nil
	s.running = false
	s.log.Info().Msg("reminder scheduler stopped")
}

// Running reports whether sweeps are scheduled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunImmediately performs one sweep now, waiting for any sweep in progress.
func (s *Scheduler) RunImmediately(ctx context.Context) (domain.SweepResult, error) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()
	return s.sweep(ctx, "manual")
}

func (s *Scheduler) runDaily(ctx context.Context) {
	defer s.wg.Done()
	for {
		next := nextDaily(time.Now(), s.opts.DailyHour, s.opts.Location)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.tick(ctx, "daily")
		}
	}
}

func (s *Scheduler) runInterval(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, "interval")
		}
	}
}

// tick runs a scheduled sweep unless one is already in progress.
func (s *Scheduler) tick(ctx context.Context, trigger string) {
	if !s.sweepMu.TryLock() {
		metrics.ReminderSweepsTotal.WithLabelValues(trigger, "overlap").Inc()
		s.log.Debug().Str("trigger", trigger).Msg("sweep already in progress, tick skipped")
		return
	}
	defer s.sweepMu.Unlock()
	_, _ = s.sweep(ctx, trigger)
}

func (s *Scheduler) sweep(ctx context.Context, trigger string) (domain.SweepResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.SweepTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.sweeper.CheckDueReminders(ctx)
	metrics.ReminderSweepDuration.Observe(time.Since(start).Seconds())
	metrics.RemindersTotal.WithLabelValues("sent").Add(float64(res.Sent))
	metrics.RemindersTotal.WithLabelValues("skipped").Add(float64(res.Skipped))
	metrics.RemindersTotal.WithLabelValues("failed").Add(float64(res.Failed))

	if err != nil {
		metrics.ReminderSweepsTotal.WithLabelValues(trigger, "error").Inc()
		s.log.Error().Err(err).Str("trigger", trigger).Msg("reminder sweep failed")
		return res, err
	}
	metrics.ReminderSweepsTotal.WithLabelValues(trigger, "ok").Inc()
	return res, nil
}

// nextDaily returns the first instant strictly after now at hour:00 in loc.
func nextDaily(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
