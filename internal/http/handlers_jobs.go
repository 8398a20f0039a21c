// Package httpx provides the JSON API for the Parkr live job system.
package httpx

import (
	"errors"
	"net/http"

	"github.com/factsuniv/Pk4/internal/data"
	"github.com/factsuniv/Pk4/internal/domain/model"
)

// JobHandlers provides HTTP handlers for job-related operations.
type JobHandlers struct {
	Jobs *data.JobStore
}

// CreateJob handles HTTP requests to create a new job.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.CreateJob(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// GetJob handles HTTP requests to fetch a single job.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Jobs.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// acceptRequest carries the accepting Parker's identity.
type acceptRequest struct {
	ParkerID    string `json:"parkerId"`
	ParkerName  string `json:"parkerName"`
	ParkerPhone string `json:"parkerPhone"`
}

// Accept handles HTTP requests by a Parker to claim an offered job.
func (h *JobHandlers) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.AcceptJob(r.Context(), r.PathValue("id"), req.ParkerID, req.ParkerName, req.ParkerPhone)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// statusRequest carries a lifecycle transition plus optional patch fields.
type statusRequest struct {
	Status           model.JobStatus `json:"status"`
	EstimatedArrival string          `json:"estimatedArrival,omitempty"`
	SpotDetails      string          `json:"spotDetails,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// UpdateStatus handles HTTP requests to move a job through its lifecycle.
func (h *JobHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	patch := &model.StatusPatch{
		EstimatedArrival: req.EstimatedArrival,
		SpotDetails:      req.SpotDetails,
		Notes:            req.Notes,
	}
	job, err := h.Jobs.UpdateJobStatus(r.Context(), r.PathValue("id"), req.Status, patch)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// cancelRequest optionally carries a cancellation reason.
type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Cancel handles HTTP requests to cancel a job.
func (h *JobHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.CancelJob(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// ListAll handles HTTP requests for the full job board.
func (h *JobHandlers) ListAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.ListAll(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// ParkerFeed handles HTTP requests for a Parker's job feed.
func (h *JobHandlers) ParkerFeed(w http.ResponseWriter, r *http.Request) {
	parkerID := r.PathValue("id")
	if parkerID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("parker id is required")})
		return
	}

	jobs, err := h.Jobs.ListForParker(r.Context(), parkerID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// CustomerJob handles HTTP requests for a customer's current job. Responds
// 204 when the customer has none.
func (h *JobHandlers) CustomerJob(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	if customerID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("customer id is required")})
		return
	}

	job, err := h.Jobs.ListForCustomer(r.Context(), customerID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if job == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Stats handles HTTP requests for job counts per lifecycle state.
func (h *JobHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Jobs.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// Preferences handles HTTP requests for the fixed pricing catalogue shown in
// the booking flow.
func (h *JobHandlers) Preferences(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, model.ParkingPreferences)
}
