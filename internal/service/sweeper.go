package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// DefaultSweepSchedule runs the reset token sweep once an hour.
const DefaultSweepSchedule = "@hourly"

// SweepRecorder receives the number of reset tokens cleared by a sweep.
type SweepRecorder interface {
	ResetTokensSwept(n int64)
}

// ResetSweeper periodically clears expired reset tokens from accounts.
type ResetSweeper struct {
	cron     *cron.Cron
	schedule string
	accounts model.AccountStore
	recorder SweepRecorder
	logger   *logger.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewResetSweeper(accounts model.AccountStore, schedule string, recorder SweepRecorder, logger *logger.Logger) *ResetSweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &ResetSweeper{
		cron:     cron.New(),
		schedule: schedule,
		accounts: accounts,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		timeout:  time.Minute,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *ResetSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Reset sweeper: started", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep or ctx.
func (s *ResetSweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep clears reset tokens that expired before now.
func (s *ResetSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.accounts.ClearExpiredResetTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", err)
	}

	if s.recorder != nil {
		s.recorder.ResetTokensSwept(n)
	}
	return n, nil
}

func (s *ResetSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.Sweep(ctx)
	if err != nil {
		s.logger.LogError("Reset sweeper: sweep failed", err)
		return
	}
	if n > 0 {
		s.logger.Info("Reset sweeper: cleared expired reset tokens", "count", n)
	}
}
