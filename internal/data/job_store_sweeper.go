package data

import (
	"context"
	"errors"
	"time"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

// ExpireOverdueOffers cancels pending jobs whose acceptance window has
// elapsed with no Parker taking them. Returns the number of jobs cancelled.
// Safe to run from multiple processes; the CAS loop makes the sweep converge
// even when sweepers race each other or a last-second accept.
func (s *JobStore) ExpireOverdueOffers(ctx context.Context) (int, error) {
	expired := 0
	err := s.mutate(ctx, func(jobs []model.Job) ([]model.Job, error) {
		expired = 0
		now := s.timeProvider.Now()
		for i := range jobs {
			job := &jobs[i]
			if job.Status != model.JobStatusPending || !s.offerPolicy.Expired(job.OfferExpiresAt, now) {
				continue
			}
			job.Status = model.JobStatusCancelled
			job.Notes = "No Parker accepted in time"
			job.LastUpdate = now
			expired++
		}
		if expired == 0 {
			return nil, errNothingToSweep
		}
		return jobs, nil
	})
	if err == errNothingToSweep {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if s.logger != nil && expired > 0 {
		s.logger.InfoContext(ctx, "expired overdue offers", "count", expired)
	}
	return expired, nil
}

// RemoveExpiredJobs drops terminal jobs older than the retention window,
// measured from creation. Live jobs are never touched regardless of age.
// Returns the number of jobs removed.
func (s *JobStore) RemoveExpiredJobs(ctx context.Context, retention time.Duration) (int, error) {
	removed := 0
	err := s.mutate(ctx, func(jobs []model.Job) ([]model.Job, error) {
		cutoff := s.timeProvider.Now().Add(-retention)
		kept := jobs[:0]
		for _, job := range jobs {
			if job.Status.Terminal() && job.CreatedAt.Before(cutoff) {
				continue
			}
			kept = append(kept, job)
		}
		removed = len(jobs) - len(kept)
		if removed == 0 {
			return nil, errNothingToSweep
		}
		return kept, nil
	})
	if err == errNothingToSweep {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if s.logger != nil && removed > 0 {
		s.logger.InfoContext(ctx, "removed expired jobs", "count", removed)
	}
	return removed, nil
}

// errNothingToSweep short-circuits the CAS loop when a sweep pass finds no
// work, avoiding a no-op write that would wake every subscriber.
var errNothingToSweep = errors.New("nothing to sweep")
