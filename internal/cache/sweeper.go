package cache

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep hourly.
const DefaultSweepSchedule = "@hourly"

// Sweeper periodically evicts expired cache entries in the background.
type Sweeper struct {
	cache    *Cache
	schedule string
	log      *slog.Logger
	cron     *cron.Cron
}

func NewSweeper(c *Cache, schedule string, log *slog.Logger) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{cache: c, schedule: schedule, log: log}
}

// Start registers the sweep job and begins the schedule. The first sweep
// runs immediately so a long-idle cache directory is cleaned at startup.
func (s *Sweeper) Start() error {
	s.sweep()

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cache sweeper started", "schedule", s.schedule)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("cache sweeper stopped")
}

func (s *Sweeper) sweep() {
	removed, err := s.cache.Sweep()
	if err != nil {
		s.log.Error("cache sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.log.Info("cache sweep removed expired entries", "count", removed)
	}
}
