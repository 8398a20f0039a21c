// Package model defines the core data types and structures used throughout the Parkr live job system.
package model

import (
	"strings"
	"time"

	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// JobStatus represents the current status of a live job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusPending indicates a job is offered to the pool and waiting for a Parker.
	JobStatusPending JobStatus = "pending"
	// JobStatusAccepted indicates a Parker has claimed the job.
	JobStatusAccepted JobStatus = "accepted"
	// JobStatusEnRoute indicates the assigned Parker is driving to the business.
	JobStatusEnRoute JobStatus = "en_route"
	// JobStatusSearching indicates the assigned Parker is looking for a spot on site.
	JobStatusSearching JobStatus = "searching"
	// JobStatusSecured indicates a parking spot is being held for the customer.
	JobStatusSecured JobStatus = "secured"
	// JobStatusCompleted indicates the job finished successfully. Terminal.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusCancelled indicates the job was cancelled by the customer or the system. Terminal.
	JobStatusCancelled JobStatus = "cancelled"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus to allow env and API parsing.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return apperrors.Validationf("invalid job status: %q", string(text))
	}
	*s = v
	return nil
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusAccepted, JobStatusEnRoute, JobStatusSearching,
		JobStatusSecured, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Terminal returns true if no further transitions are permitted out of this status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Job represents a single requested parking transaction from creation to terminal state.
//
// A job has at most one assigned Parker for its entire life; once ParkerID is set
// it is never cleared or reassigned. Cancellation marks the status, it does not
// release the Parker slot on the job record.
type Job struct {
	ID string `json:"id"`

	// Customer party, set at creation and immutable.
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	// Location and service tier.
	BusinessID          string            `json:"businessId"`
	BusinessName        string            `json:"businessName"`
	BusinessAddress     string            `json:"businessAddress"`
	BusinessCoordinates Coordinates       `json:"businessCoordinates"`
	ParkingPreference   ParkingPreference `json:"parkingPreference"`
	PreferenceLabel     string            `json:"preferenceLabel"`

	// Money. TotalCustomerPrice is computed once at creation and never recomputed.
	CustomerPrice      float64 `json:"customerPrice"`
	ParkerPay          float64 `json:"parkerPay"`
	Tip                float64 `json:"tip"`
	TotalCustomerPrice float64 `json:"totalCustomerPrice"`

	Status JobStatus `json:"status"`

	// Parker party, set exactly once on acceptance and immutable thereafter.
	ParkerID    string `json:"parkerId,omitempty"`
	ParkerName  string `json:"parkerName,omitempty"`
	ParkerPhone string `json:"parkerPhone,omitempty"`

	EstimatedArrival string `json:"estimatedArrival,omitempty"`
	SpotDetails      string `json:"spotDetails,omitempty"`
	Notes            string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	// OfferExpiresAt is the hard acceptance deadline stamped at creation. A
	// pending job past this instant is no longer offerable.
	OfferExpiresAt time.Time  `json:"offerExpiresAt"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	LastUpdate     time.Time  `json:"lastUpdate"`
}

// Open returns true if the job is still in a non-terminal status.
func (j *Job) Open() bool {
	return !j.Status.Terminal()
}

// Offerable reports whether the job can still be claimed by a Parker at the
// given instant: it must be pending, unassigned, and inside its offer window.
func (j *Job) Offerable(now time.Time) bool {
	return j.Status == JobStatusPending && j.ParkerID == "" && now.Before(j.OfferExpiresAt)
}

// CreateJobRequest represents a request to create a new live job.
//
// Identity and business fields come from the session and business directory
// collaborators; the core trusts them as given and validates presence only.
type CreateJobRequest struct {
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	BusinessID          string      `json:"businessId"`
	BusinessName        string      `json:"businessName"`
	BusinessAddress     string      `json:"businessAddress"`
	BusinessCoordinates Coordinates `json:"businessCoordinates"`

	ParkingPreference ParkingPreference `json:"parkingPreference"`
	PreferenceLabel   string            `json:"preferenceLabel"`
	CustomerPrice     float64           `json:"customerPrice"`
	ParkerPay         float64           `json:"parkerPay"`
	Tip               float64           `json:"tip"`

	// OfferWindowSeconds optionally overrides how long the job stays offered
	// to Parkers. Zero means the engine default.
	OfferWindowSeconds int `json:"offerWindowSeconds,omitempty"`
}

// OfferWindow returns the requested acceptance window as a duration; zero
// when the caller left the engine default in place.
func (r *CreateJobRequest) OfferWindow() time.Duration {
	return time.Duration(r.OfferWindowSeconds) * time.Second
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	switch {
	case r.CustomerID == "":
		return apperrors.ValidationField("customerId", "customer id is required")
	case r.CustomerName == "":
		return apperrors.ValidationField("customerName", "customer name is required")
	case r.CustomerPhone == "":
		return apperrors.ValidationField("customerPhone", "customer phone is required")
	case r.BusinessID == "":
		return apperrors.ValidationField("businessId", "business id is required")
	case r.BusinessName == "":
		return apperrors.ValidationField("businessName", "business name is required")
	case r.BusinessAddress == "":
		return apperrors.ValidationField("businessAddress", "business address is required")
	}
	if !r.ParkingPreference.Valid() {
		return apperrors.ValidationField("parkingPreference", "invalid parking preference")
	}
	if r.PreferenceLabel == "" {
		return apperrors.ValidationField("preferenceLabel", "preference label is required")
	}
	if r.CustomerPrice < 0 {
		return apperrors.ValidationField("customerPrice", "customer price must be non-negative")
	}
	if r.ParkerPay < 0 {
		return apperrors.ValidationField("parkerPay", "parker pay must be non-negative")
	}
	if r.Tip < 0 {
		return apperrors.ValidationField("tip", "tip must be non-negative")
	}
	if r.OfferWindowSeconds < 0 {
		return apperrors.ValidationField("offerWindowSeconds", "offer window must be non-negative")
	}
	return nil
}

// StatusPatch carries the optional free-form fields that may be merged
// atomically with a status update. Empty fields are left untouched.
type StatusPatch struct {
	EstimatedArrival string `json:"estimatedArrival,omitempty"`
	SpotDetails      string `json:"spotDetails,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// JobStats represents counts of jobs in each lifecycle state.
type JobStats struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	EnRoute   int `json:"en_route"`
	Searching int `json:"searching"`
	Secured   int `json:"secured"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
