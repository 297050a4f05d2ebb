package scheduler

import (
	"context"
	"log/slog"
	"time"

	"newstv/internal/domain"
)

// Reloader is the controller as seen by the refresh scheduler.
type Reloader interface {
	State() domain.ViewState
	Reload()
}

// Scheduler reloads headlines on a fixed interval. A tick only reloads when
// the current state is a success, so failures stay on screen until the
// viewer retries and an outstanding fetch is never superseded by a tick.
type Scheduler struct {
	reloader Reloader
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(reloader Reloader, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		reloader: reloader,
		interval: interval,
		logger:   logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	state := s.reloader.State()
	if state.Kind() != domain.KindSuccess {
		s.logger.Debug("skipping refresh", "state", state.Kind())
		return
	}
	s.reloader.Reload()
}
