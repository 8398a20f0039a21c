package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

func validCreateRequest() CreateJobRequest {
	return CreateJobRequest{
		CustomerID:          "c1",
		CustomerName:        "Alex Johnson",
		CustomerPhone:       "(469) 555-0123",
		BusinessID:          "biz-topgolf",
		BusinessName:        "TopGolf",
		BusinessAddress:     "6700 Winning Dr, The Colony, TX",
		BusinessCoordinates: Coordinates{Lat: 33.0869, Lng: -96.8919},
		ParkingPreference:   PreferenceBestAvailable,
		PreferenceLabel:     "Best spot available",
		CustomerPrice:       18,
		ParkerPay:           8,
		Tip:                 2,
	}
}

func TestCreateJobRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validCreateRequest()
		require.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CreateJobRequest)
		field  string
	}{
		{"missing customer id", func(r *CreateJobRequest) { r.CustomerID = "" }, "customerId"},
		{"missing customer name", func(r *CreateJobRequest) { r.CustomerName = "" }, "customerName"},
		{"missing customer phone", func(r *CreateJobRequest) { r.CustomerPhone = "" }, "customerPhone"},
		{"missing business id", func(r *CreateJobRequest) { r.BusinessID = "" }, "businessId"},
		{"missing business name", func(r *CreateJobRequest) { r.BusinessName = "" }, "businessName"},
		{"missing business address", func(r *CreateJobRequest) { r.BusinessAddress = "" }, "businessAddress"},
		{"invalid preference", func(r *CreateJobRequest) { r.ParkingPreference = "valet" }, "parkingPreference"},
		{"missing preference label", func(r *CreateJobRequest) { r.PreferenceLabel = "" }, "preferenceLabel"},
		{"negative price", func(r *CreateJobRequest) { r.CustomerPrice = -1 }, "customerPrice"},
		{"negative parker pay", func(r *CreateJobRequest) { r.ParkerPay = -0.5 }, "parkerPay"},
		{"negative tip", func(r *CreateJobRequest) { r.Tip = -2 }, "tip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestJobStatus_Valid(t *testing.T) {
	for _, s := range []JobStatus{
		JobStatusPending, JobStatusAccepted, JobStatusEnRoute,
		JobStatusSearching, JobStatusSecured, JobStatusCompleted, JobStatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("parked").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusCancelled.Terminal())
	for _, s := range []JobStatus{JobStatusPending, JobStatusAccepted, JobStatusEnRoute, JobStatusSearching, JobStatusSecured} {
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestJobStatus_UnmarshalText(t *testing.T) {
	var s JobStatus
	require.NoError(t, s.UnmarshalText([]byte(" En_Route ")))
	assert.Equal(t, JobStatusEnRoute, s)

	err := s.UnmarshalText([]byte("double_parked"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJob_Offerable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job := Job{
		Status:         JobStatusPending,
		OfferExpiresAt: now.Add(time.Minute),
	}

	assert.True(t, job.Offerable(now))

	t.Run("expired offer", func(t *testing.T) {
		assert.False(t, job.Offerable(now.Add(2*time.Minute)))
	})

	t.Run("already assigned", func(t *testing.T) {
		assigned := job
		assigned.ParkerID = "p1"
		assert.False(t, assigned.Offerable(now))
	})

	t.Run("not pending", func(t *testing.T) {
		accepted := job
		accepted.Status = JobStatusAccepted
		assert.False(t, accepted.Offerable(now))
	})
}

func TestPreferenceTierByID(t *testing.T) {
	tier := PreferenceTierByID(PreferenceBestAvailable)
	require.NotNil(t, tier)
	assert.Equal(t, "Best spot available", tier.Label)
	assert.InEpsilon(t, 18.0, tier.CustomerPrice, 1e-9)
	assert.InEpsilon(t, 8.0, tier.ParkerPay, 1e-9)

	assert.Nil(t, PreferenceTierByID("valet"))
}

func TestParker_Available(t *testing.T) {
	p := Parker{ID: "p1", IsOnline: true}
	assert.True(t, p.Available())

	p.CurrentJobID = "job-1"
	assert.False(t, p.Available())

	p.CurrentJobID = ""
	p.IsOnline = false
	assert.False(t, p.Available())
}

func TestParker_Validate(t *testing.T) {
	p := Parker{ID: "p1", Name: "Sarah Parker", Phone: "(214) 555-0198"}
	require.NoError(t, p.Validate())

	missing := p
	missing.Phone = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Equal(t, "phone", apperrors.GetField(err))
}
