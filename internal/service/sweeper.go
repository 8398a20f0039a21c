package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/factsuniv/Pk4/config"
)

// JobSweeper defines the cleanup surface SweeperService drives.
type JobSweeper interface {
	ExpireOverdueOffers(ctx context.Context) (int, error)
	RemoveExpiredJobs(ctx context.Context, retention time.Duration) (int, error)
}

// SweeperServiceOptions groups dependencies for SweeperService.
type SweeperServiceOptions struct {
	Sweeper JobSweeper           // Required: cleanup operations
	Config  config.SweeperConfig // Required: sweep cadence and retention
	Logger  *slog.Logger         // Optional: structured logger
}

// SweeperService runs the periodic job hygiene loop:
//   - cancelling pending jobs whose acceptance window lapsed unclaimed
//   - dropping terminal jobs older than the retention window
//
// Multiple instances may run against the same store; the operations converge
// under the store's compare-and-swap, so overlap is wasted work, not
// corruption.
type SweeperService struct {
	sweeper JobSweeper
	config  config.SweeperConfig
	logger  *slog.Logger
}

// NewSweeperService constructs a new SweeperService.
func NewSweeperService(opts SweeperServiceOptions) (*SweeperService, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("JobSweeper is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "sweeper_service")
		logger.Debug("SweeperService initialized",
			"interval", opts.Config.Interval,
			"retention", opts.Config.Retention,
		)
	}

	return &SweeperService{
		sweeper: opts.Sweeper,
		config:  opts.Config,
		logger:  logger,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *SweeperService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting sweeper service", "interval", s.config.Interval)
	}

	// Jitter keeps multiple instances from sweeping in lockstep.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if err := s.runSweep(ctx); err != nil {
		s.logSweepError(err, "initial sweep")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "sweeper service stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runSweep(ctx); err != nil {
				s.logSweepError(err, "sweep")
				// Keep running despite errors.
			}
		}
	}
}

// waitWithJitter adds a random delay up to 10% of the interval.
func (s *SweeperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup.
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)))

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

// runSweep performs both cleanup passes, collecting errors so one failing
// pass never starves the other.
func (s *SweeperService) runSweep(ctx context.Context) error {
	var errs []error

	expired, err := s.sweeper.ExpireOverdueOffers(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("expire overdue offers: %w", err))
	} else if expired > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "cancelled unclaimed offers", "count", expired)
	}

	removed, err := s.sweeper.RemoveExpiredJobs(ctx, s.config.Retention)
	if err != nil {
		errs = append(errs, fmt.Errorf("remove expired jobs: %w", err))
	} else if removed > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "removed retained jobs", "count", removed, "retention", s.config.Retention)
	}

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		if isContextCancellation(joined) {
			return context.Canceled
		}
		return fmt.Errorf("sweep failed: %w", joined)
	}
	return nil
}

func (s *SweeperService) logSweepError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}
	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}
	s.logger.Error(label+" failed", "error", err)
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
