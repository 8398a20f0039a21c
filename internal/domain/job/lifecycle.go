// Package job holds the domain policies of the live job lifecycle: the legal
// transition table, the offer acceptance window, and the arrival estimation strategy.
package job

import (
	"time"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// transitions is the legal transition table of the job lifecycle. A status
// change absent from this table is rejected before any mutation is applied.
// Terminal statuses map to an empty set.
var transitions = map[model.JobStatus][]model.JobStatus{
	model.JobStatusPending:   {model.JobStatusAccepted, model.JobStatusCancelled},
	model.JobStatusAccepted:  {model.JobStatusEnRoute, model.JobStatusCancelled},
	model.JobStatusEnRoute:   {model.JobStatusSearching, model.JobStatusCancelled},
	model.JobStatusSearching: {model.JobStatusSecured, model.JobStatusCancelled},
	model.JobStatusSecured:   {model.JobStatusCompleted, model.JobStatusCancelled},
	model.JobStatusCompleted: {},
	model.JobStatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal lifecycle transition.
func CanTransition(from, to model.JobStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition applies a status change to the job and maintains the
// timestamp fields the transition requires. It rejects illegal transitions
// with an IllegalTransition error and leaves the job untouched in that case.
func ApplyTransition(j *model.Job, to model.JobStatus, now time.Time) error {
	if j == nil {
		return apperrors.Validation("job is nil")
	}
	if !to.Valid() {
		return apperrors.Validationf("invalid job status: %q", string(to))
	}
	if !CanTransition(j.Status, to) {
		return apperrors.IllegalTransitionf("illegal job transition: %s -> %s", j.Status, to)
	}

	j.Status = to
	j.LastUpdate = now

	switch to {
	case model.JobStatusAccepted:
		if j.AcceptedAt == nil {
			t := now
			j.AcceptedAt = &t
		}
	case model.JobStatusCompleted:
		if j.CompletedAt == nil {
			t := now
			j.CompletedAt = &t
		}
	}
	return nil
}
