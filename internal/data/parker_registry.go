package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
	"github.com/factsuniv/Pk4/internal/kvstore"
)

// ParkerRegistryOptions groups dependencies for ParkerRegistry.
type ParkerRegistryOptions struct {
	Store        kvstore.Store // Required: shared persistence adapter
	TimeProvider TimeProvider  // Optional: defaults to real time
	Logger       *slog.Logger  // Optional: structured logger
}

// ParkerRegistry is the presence and assignment bookkeeping collection for
// matching-pool participants. The collection is persisted whole as a mapping
// from parker id to record; every mutation goes through a CAS loop on the
// shared store.
//
// There is no delete operation: a Parker gone for good stays registered with
// IsOnline=false.
type ParkerRegistry struct {
	store        kvstore.Store
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewParkerRegistry constructs a ParkerRegistry.
func NewParkerRegistry(opts ParkerRegistryOptions) (*ParkerRegistry, error) {
	if opts.Store == nil {
		return nil, errors.New("kvstore is required")
	}
	tp := opts.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "parker_registry")
	}
	return &ParkerRegistry{
		store:        opts.Store,
		timeProvider: tp,
		logger:       logger,
	}, nil
}

// Register upserts a parker record by id and stamps lastSeen.
func (r *ParkerRegistry) Register(ctx context.Context, parker model.Parker) (*model.Parker, error) {
	if err := parker.Validate(); err != nil {
		return nil, err
	}

	var registered model.Parker
	err := r.mutate(ctx, func(parkers map[string]model.Parker) error {
		parker.LastSeen = r.timeProvider.Now()
		if existing, ok := parkers[parker.ID]; ok {
			// Re-registration must not clobber live assignment state.
			parker.CurrentJobID = existing.CurrentJobID
		}
		parkers[parker.ID] = parker
		registered = parker
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "parker registered", "id", registered.ID, "online", registered.IsOnline)
	}
	return &registered, nil
}

// SetOnline updates a parker's availability flag and optionally their last
// known location, stamping lastSeen. The parker must already be registered.
func (r *ParkerRegistry) SetOnline(ctx context.Context, parkerID string, online bool, location *model.Coordinates) (*model.Parker, error) {
	var updated model.Parker
	err := r.mutate(ctx, func(parkers map[string]model.Parker) error {
		parker, ok := parkers[parkerID]
		if !ok {
			return apperrors.NotFoundf("parker %s not found", parkerID)
		}
		parker.IsOnline = online
		if location != nil {
			loc := *location
			parker.CurrentLocation = &loc
		}
		parker.LastSeen = r.timeProvider.Now()
		parkers[parkerID] = parker
		updated = parker
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "parker presence updated", "id", parkerID, "online", online)
	}
	return &updated, nil
}

// Get returns the registry entry for the given parker id.
func (r *ParkerRegistry) Get(ctx context.Context, parkerID string) (*model.Parker, error) {
	parkers, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	parker, ok := parkers[parkerID]
	if !ok {
		return nil, apperrors.NotFoundf("parker %s not found", parkerID)
	}
	return &parker, nil
}

// ListOnline returns every parker currently flagged online, ordered by id for
// deterministic iteration.
func (r *ParkerRegistry) ListOnline(ctx context.Context) ([]model.Parker, error) {
	return r.list(ctx, func(p *model.Parker) bool { return p.IsOnline })
}

// ListAvailable returns every parker eligible for new offers: online and not
// holding an open job.
func (r *ParkerRegistry) ListAvailable(ctx context.Context) ([]model.Parker, error) {
	return r.list(ctx, (*model.Parker).Available)
}

// Assign marks the parker busy with the given job. Fails if the parker already
// holds a different open job.
func (r *ParkerRegistry) Assign(ctx context.Context, parkerID, jobID string) error {
	return r.mutate(ctx, func(parkers map[string]model.Parker) error {
		parker, ok := parkers[parkerID]
		if !ok {
			return apperrors.NotFoundf("parker %s not found", parkerID)
		}
		if parker.CurrentJobID != "" && parker.CurrentJobID != jobID {
			return apperrors.Conflictf("parker %s already assigned to job %s", parkerID, parker.CurrentJobID)
		}
		parker.CurrentJobID = jobID
		parker.LastSeen = r.timeProvider.Now()
		parkers[parkerID] = parker
		return nil
	})
}

// Release clears the parker's current assignment if it matches the given job.
// Releasing an assignment the parker no longer holds is a no-op.
func (r *ParkerRegistry) Release(ctx context.Context, parkerID, jobID string) error {
	return r.mutate(ctx, func(parkers map[string]model.Parker) error {
		parker, ok := parkers[parkerID]
		if !ok || parker.CurrentJobID != jobID {
			return nil
		}
		parker.CurrentJobID = ""
		parker.LastSeen = r.timeProvider.Now()
		parkers[parkerID] = parker
		return nil
	})
}

func (r *ParkerRegistry) list(ctx context.Context, keep func(*model.Parker) bool) ([]model.Parker, error) {
	parkers, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Parker, 0, len(parkers))
	for _, p := range parkers {
		if keep(&p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ParkerRegistry) load(ctx context.Context) (map[string]model.Parker, uint64, error) {
	data, version, err := r.store.Get(ctx, kvstore.KeyParkers)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodePersistence, "read parkers collection")
	}
	parkers := make(map[string]model.Parker)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parkers); err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodePersistence, "decode parkers collection")
		}
	}
	return parkers, version, nil
}

// mutate runs fn against the current collection under an optimistic CAS loop.
// fn sees a fresh copy on every attempt, so validation re-runs after a lost race.
func (r *ParkerRegistry) mutate(ctx context.Context, fn func(map[string]model.Parker) error) error {
	for range casAttempts {
		parkers, version, err := r.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(parkers); err != nil {
			return err
		}
		data, err := json.Marshal(parkers)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "encode parkers collection")
		}
		_, err = r.store.Put(ctx, kvstore.KeyParkers, data, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrVersionConflict) {
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "write parkers collection")
		}
	}
	return apperrors.Persistence(fmt.Sprintf("write parkers collection: lost %d consecutive races", casAttempts))
}
