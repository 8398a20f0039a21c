package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainjob "github.com/factsuniv/Pk4/internal/domain/job"
	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
	"github.com/factsuniv/Pk4/internal/kvstore"
	"github.com/factsuniv/Pk4/internal/notify"
)

// casAttempts bounds the optimistic retry loop around collection writes.
// Losing this many consecutive races means the store is pathologically
// contended and the operation fails rather than spinning.
const casAttempts = 8

// JobStoreOptions groups dependencies for JobStore.
type JobStoreOptions struct {
	Store        kvstore.Store          // Required: shared persistence adapter
	Registry     *ParkerRegistry        // Required: assignment bookkeeping
	OfferPolicy  *domainjob.OfferPolicy // Required: acceptance window policy
	ETA          domainjob.ETAEstimator // Optional: defaults to the randomized placeholder
	Surface      notify.Surface         // Optional: best-effort user alerts
	TimeProvider TimeProvider           // Optional: defaults to real time
	Logger       *slog.Logger           // Optional: structured logger
}

// JobStore is the single source of truth for live job records. Every mutation
// goes through a guarded transition applied inside an optimistic CAS loop on
// the shared store, so two contexts racing on the same collection cannot
// silently clobber each other - the loser re-reads and re-validates, which is
// what turns a lost accept race into a StaleAcceptance failure instead of a
// double assignment.
type JobStore struct {
	store        kvstore.Store
	registry     *ParkerRegistry
	offerPolicy  *domainjob.OfferPolicy
	eta          domainjob.ETAEstimator
	surface      notify.Surface
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewJobStore constructs a JobStore.
func NewJobStore(opts JobStoreOptions) (*JobStore, error) {
	if opts.Store == nil {
		return nil, errors.New("kvstore is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("parker registry is required")
	}
	if opts.OfferPolicy == nil {
		return nil, errors.New("offer policy is required")
	}

	eta := opts.ETA
	if eta == nil {
		eta = domainjob.NewRandomETAEstimator(nil)
	}
	surface := opts.Surface
	if surface == nil {
		surface = notify.NopSurface{}
	}
	tp := opts.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "job_store")
	}

	return &JobStore{
		store:        opts.Store,
		registry:     opts.Registry,
		offerPolicy:  opts.OfferPolicy,
		eta:          eta,
		surface:      surface,
		timeProvider: tp,
		logger:       logger,
	}, nil
}

// CreateJob validates the request and persists a new pending job with its
// acceptance deadline stamped. A customer with an open job may not create a
// second one. Returns the created job.
func (s *JobStore) CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	window := s.offerPolicy.Resolve(req.OfferWindow())

	now := s.timeProvider.Now()
	job := model.Job{
		ID:                  uuid.New().String(),
		CustomerID:          req.CustomerID,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		BusinessID:          req.BusinessID,
		BusinessName:        req.BusinessName,
		BusinessAddress:     req.BusinessAddress,
		BusinessCoordinates: req.BusinessCoordinates,
		ParkingPreference:   req.ParkingPreference,
		PreferenceLabel:     req.PreferenceLabel,
		CustomerPrice:       req.CustomerPrice,
		ParkerPay:           req.ParkerPay,
		Tip:                 req.Tip,
		TotalCustomerPrice:  req.CustomerPrice + req.Tip,
		Status:              model.JobStatusPending,
		CreatedAt:           now,
		OfferExpiresAt:      now.Add(window.Window),
		LastUpdate:          now,
	}

	err := s.mutate(ctx, func(jobs []model.Job) ([]model.Job, error) {
		for i := range jobs {
			if jobs[i].CustomerID == req.CustomerID && jobs[i].Open() {
				return nil, apperrors.Conflictf("customer %s already has an open job", req.CustomerID)
			}
		}
		return append(jobs, job), nil
	})
	if err != nil {
		return nil, err
	}

	s.surface.Push(ctx, notify.JobCreated(&job))
	s.broadcastNewJob(ctx, &job)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "job created",
			"id", job.ID,
			"business", job.BusinessName,
			"preference", job.ParkingPreference,
			"total_price", job.TotalCustomerPrice,
			"offer_window", window.Window)
		if window.Clamped() {
			s.logger.WarnContext(ctx, "requested offer window clamped",
				"id", job.ID, "requested", window.Requested, "window", window.Window)
		}
	}
	return &job, nil
}

// GetJob returns the job with the given id.
func (s *JobStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	jobs, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == jobID {
			job := jobs[i]
			return &job, nil
		}
	}
	return nil, apperrors.NotFoundf("job %s not found", jobID)
}

// AcceptJob is the guarded pending -> accepted transition. The check that the
// job is still offerable runs inside the CAS loop, so of two Parkers accepting
// "at the same time" exactly one succeeds; the other gets StaleAcceptance. A
// late accept on an expired offer is rejected the same way - the client-side
// countdown is display only.
func (s *JobStore) AcceptJob(ctx context.Context, jobID, parkerID, parkerName, parkerPhone string) (*model.Job, error) {
	if parkerID == "" {
		return nil, apperrors.ValidationField("parkerId", "parker id is required")
	}

	// Acceptance requires a registered Parker: the busy check and the
	// assignment bookkeeping both key off the registry record, so an unknown
	// id must not slip past them.
	parker, err := s.registry.Get(ctx, parkerID)
	if err != nil {
		return nil, err
	}
	// A Parker holding an open job may not take another.
	if parker.CurrentJobID != "" && parker.CurrentJobID != jobID {
		return nil, apperrors.Conflictf("parker %s already has an open job", parkerID)
	}

	var accepted model.Job
	err = s.mutate(ctx, func(jobs []model.Job) ([]model.Job, error) {
		idx := indexOf(jobs, jobID)
		if idx < 0 {
			return nil, apperrors.NotFoundf("job %s not found", jobID)
		}
		job := &jobs[idx]

		now := s.timeProvider.Now()
		if !job.Offerable(now) {
			if job.Status == model.JobStatusPending && s.offerPolicy.Expired(job.OfferExpiresAt, now) {
				return nil, apperrors.StaleAcceptancef("job %s offer expired", jobID)
			}
			return nil, apperrors.StaleAcceptancef("job %s is no longer available", jobID)
		}

		if err := domainjob.ApplyTransition(job, model.JobStatusAccepted, now); err != nil {
			return nil, err
		}
		job.ParkerID = parkerID
		job.ParkerName = parkerName
		job.ParkerPhone = parkerPhone
		job.EstimatedArrival = s.eta.Estimate(parker, job.BusinessCoordinates)
		accepted = *job
		return jobs, nil
	})
	if err != nil {
		return nil, err
	}

	// The acceptance is durable at this point; a registry hiccup must not
	// unwind it. Log and move on.
	if err := s.registry.Assign(ctx, parkerID, jobID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "assign parker after acceptance failed",
			"job_id", jobID, "parker_id", parkerID, "error", err)
	}

	s.surface.Push(ctx, notify.JobAccepted(&accepted))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "job accepted",
			"id", accepted.ID, "parker_id", parkerID, "eta", accepted.EstimatedArrival)
	}
	return &accepted, nil
}

// UpdateJobStatus is the only sanctioned mutation path for an existing job.
// The transition is validated against the lifecycle table before any write,
// and patch fields merge atomically with the status change. Acceptance must
// go through AcceptJob, which carries the Parker identity.
func (s *JobStore) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, patch *model.StatusPatch) (*model.Job, error) {
	if status == model.JobStatusAccepted {
		return nil, apperrors.Validation("acceptance must go through AcceptJob")
	}

	var updated model.Job
	err := s.mutate(ctx, func(jobs []model.Job) ([]model.Job, error) {
		idx := indexOf(jobs, jobID)
		if idx < 0 {
			return nil, apperrors.NotFoundf("job %s not found", jobID)
		}
		job := &jobs[idx]

		if err := domainjob.ApplyTransition(job, status, s.timeProvider.Now()); err != nil {
			return nil, err
		}
		if patch != nil {
			if patch.EstimatedArrival != "" {
				job.EstimatedArrival = patch.EstimatedArrival
			}
			if patch.SpotDetails != "" {
				job.SpotDetails = patch.SpotDetails
			}
			if patch.Notes != "" {
				job.Notes = patch.Notes
			}
		}
		updated = *job
		return jobs, nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status.Terminal() && updated.ParkerID != "" {
		if err := s.registry.Release(ctx, updated.ParkerID, updated.ID); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "release parker after terminal transition failed",
				"job_id", updated.ID, "parker_id", updated.ParkerID, "error", err)
		}
	}

	if msg := notify.StatusMessage(&updated); msg != "" {
		s.surface.Push(ctx, msg)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "job status updated", "id", updated.ID, "status", updated.Status)
	}
	return &updated, nil
}

// CancelJob marks the job cancelled with the given reason in its notes.
// Cancellation is legal from any non-terminal state.
func (s *JobStore) CancelJob(ctx context.Context, jobID, reason string) (*model.Job, error) {
	if reason == "" {
		reason = "Cancelled by customer"
	}
	return s.UpdateJobStatus(ctx, jobID, model.JobStatusCancelled, &model.StatusPatch{Notes: reason})
}

// ListAll returns the whole job collection.
func (s *JobStore) ListAll(ctx context.Context) ([]model.Job, error) {
	jobs, _, err := s.load(ctx)
	return jobs, err
}

// ListForParker returns the jobs a Parker's feed shows: unassigned offerable
// pending jobs plus the Parker's own non-terminal jobs. Jobs assigned to a
// different Parker never appear.
func (s *JobStore) ListForParker(ctx context.Context, parkerID string) ([]model.Job, error) {
	jobs, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.timeProvider.Now()
	feed := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Offerable(now) || (job.ParkerID == parkerID && job.Open()) {
			feed = append(feed, job)
		}
	}
	return feed, nil
}

// ListForCustomer returns the customer's current non-completed job, or nil
// when they have none. Cancelled jobs are included so the customer sees the
// cancellation until it is swept.
func (s *JobStore) ListForCustomer(ctx context.Context, customerID string) (*model.Job, error) {
	jobs, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].CustomerID == customerID && jobs[i].Status != model.JobStatusCompleted {
			job := jobs[i]
			return &job, nil
		}
	}
	return nil, nil
}

// Stats returns counts of jobs per lifecycle state.
func (s *JobStore) Stats(ctx context.Context) (*model.JobStats, error) {
	jobs, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var stats model.JobStats
	for i := range jobs {
		switch jobs[i].Status {
		case model.JobStatusPending:
			stats.Pending++
		case model.JobStatusAccepted:
			stats.Accepted++
		case model.JobStatusEnRoute:
			stats.EnRoute++
		case model.JobStatusSearching:
			stats.Searching++
		case model.JobStatusSecured:
			stats.Secured++
		case model.JobStatusCompleted:
			stats.Completed++
		case model.JobStatusCancelled:
			stats.Cancelled++
		}
	}
	return &stats, nil
}

// broadcastNewJob announces a fresh offer to every available Parker. Purely
// best-effort; a real deployment would push to devices here.
func (s *JobStore) broadcastNewJob(ctx context.Context, job *model.Job) {
	available, err := s.registry.ListAvailable(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "list available parkers for broadcast failed", "error", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "new job broadcast",
			"id", job.ID, "business", job.BusinessName, "available_parkers", len(available))
	}
}

func indexOf(jobs []model.Job, jobID string) int {
	for i := range jobs {
		if jobs[i].ID == jobID {
			return i
		}
	}
	return -1
}

func (s *JobStore) load(ctx context.Context) ([]model.Job, uint64, error) {
	data, version, err := s.store.Get(ctx, kvstore.KeyJobs)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodePersistence, "read jobs collection")
	}
	var jobs []model.Job
	if len(data) > 0 {
		if err := json.Unmarshal(data, &jobs); err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodePersistence, "decode jobs collection")
		}
	}
	return jobs, version, nil
}

// mutate runs fn against the current collection under an optimistic CAS loop.
// fn sees a fresh copy on every attempt, so guards re-run after a lost race.
func (s *JobStore) mutate(ctx context.Context, fn func(jobs []model.Job) ([]model.Job, error)) error {
	for range casAttempts {
		jobs, version, err := s.load(ctx)
		if err != nil {
			return err
		}
		updated, err := fn(jobs)
		if err != nil {
			return err
		}
		data, err := json.Marshal(updated)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "encode jobs collection")
		}
		_, err = s.store.Put(ctx, kvstore.KeyJobs, data, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrVersionConflict) {
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "write jobs collection")
		}
	}
	return apperrors.Persistence(fmt.Sprintf("write jobs collection: lost %d consecutive races", casAttempts))
}
