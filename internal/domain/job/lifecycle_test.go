package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

var allStatuses = []model.JobStatus{
	model.JobStatusPending,
	model.JobStatusAccepted,
	model.JobStatusEnRoute,
	model.JobStatusSearching,
	model.JobStatusSecured,
	model.JobStatusCompleted,
	model.JobStatusCancelled,
}

// legal mirrors the intended contract: the happy path chain plus cancellation
// from every non-terminal state.
var legal = map[model.JobStatus][]model.JobStatus{
	model.JobStatusPending:   {model.JobStatusAccepted, model.JobStatusCancelled},
	model.JobStatusAccepted:  {model.JobStatusEnRoute, model.JobStatusCancelled},
	model.JobStatusEnRoute:   {model.JobStatusSearching, model.JobStatusCancelled},
	model.JobStatusSearching: {model.JobStatusSecured, model.JobStatusCancelled},
	model.JobStatusSecured:   {model.JobStatusCompleted, model.JobStatusCancelled},
}

func isLegal(from, to model.JobStatus) bool {
	for _, s := range legal[from] {
		if s == to {
			return true
		}
	}
	return false
}

func TestCanTransition_FullTable(t *testing.T) {
	// Exhaustive check over every (from, to) pair, legal and illegal alike.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, isLegal(from, to), CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatesAreDeadEnds(t *testing.T) {
	for _, from := range []model.JobStatus{model.JobStatusCompleted, model.JobStatusCancelled} {
		for _, to := range allStatuses {
			assert.False(t, CanTransition(from, to), "transition %s -> %s", from, to)
		}
	}
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accept stamps acceptedAt", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusPending}
		require.NoError(t, ApplyTransition(j, model.JobStatusAccepted, now))
		assert.Equal(t, model.JobStatusAccepted, j.Status)
		require.NotNil(t, j.AcceptedAt)
		assert.Equal(t, now, *j.AcceptedAt)
		assert.Equal(t, now, j.LastUpdate)
		assert.Nil(t, j.CompletedAt)
	})

	t.Run("complete stamps completedAt", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusSecured}
		require.NoError(t, ApplyTransition(j, model.JobStatusCompleted, now))
		require.NotNil(t, j.CompletedAt)
		assert.Equal(t, now, *j.CompletedAt)
	})

	t.Run("intermediate steps stamp lastUpdate only", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusAccepted}
		require.NoError(t, ApplyTransition(j, model.JobStatusEnRoute, now))
		assert.Equal(t, now, j.LastUpdate)
		assert.Nil(t, j.AcceptedAt)
		assert.Nil(t, j.CompletedAt)
	})

	t.Run("illegal transition leaves job unchanged", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusPending}
		err := ApplyTransition(j, model.JobStatusSecured, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsIllegalTransition(err))
		assert.Equal(t, model.JobStatusPending, j.Status)
		assert.True(t, j.LastUpdate.IsZero())
	})

	t.Run("transition out of cancelled rejected", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusCancelled}
		err := ApplyTransition(j, model.JobStatusEnRoute, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsIllegalTransition(err))
	})

	t.Run("invalid target status rejected", func(t *testing.T) {
		j := &model.Job{Status: model.JobStatusPending}
		err := ApplyTransition(j, "parked", now)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("nil job rejected", func(t *testing.T) {
		err := ApplyTransition(nil, model.JobStatusAccepted, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("acceptedAt not overwritten", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		j := &model.Job{Status: model.JobStatusPending, AcceptedAt: &earlier}
		require.NoError(t, ApplyTransition(j, model.JobStatusAccepted, now))
		assert.Equal(t, earlier, *j.AcceptedAt)
	})
}
