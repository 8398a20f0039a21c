// Package notify is the best-effort user-facing alert surface. Messages
// describe a job transition for display (toast-style); delivery is purely
// observational and never affects job state.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

// Surface is a fire-and-forget sink for user-facing messages. Implementations
// must treat failures as their own problem: the core never checks an error.
type Surface interface {
	Push(ctx context.Context, message string)
}

// JobCreated returns the creation confirmation shown to the customer.
func JobCreated(_ *model.Job) string {
	return "Job created! Finding Parkers in your area..."
}

// JobAccepted returns the acceptance confirmation shown to the customer.
func JobAccepted(job *model.Job) string {
	return fmt.Sprintf("%s accepted your job!", job.ParkerName)
}

// StatusMessage returns the human message for the job's current status, or ""
// when the status has no user-facing copy (pending has none; creation and
// acceptance have dedicated messages).
func StatusMessage(job *model.Job) string {
	switch job.Status {
	case model.JobStatusAccepted:
		return fmt.Sprintf("%s is heading to %s", job.ParkerName, job.BusinessName)
	case model.JobStatusEnRoute:
		eta := job.EstimatedArrival
		if eta == "" {
			eta = "10 min"
		}
		return fmt.Sprintf("%s is on the way (ETA: %s)", job.ParkerName, eta)
	case model.JobStatusSearching:
		return fmt.Sprintf("%s is searching for your parking spot", job.ParkerName)
	case model.JobStatusSecured:
		details := job.SpotDetails
		if details == "" {
			details = "Check instructions"
		}
		return fmt.Sprintf("Parking spot secured at %s! %s", job.BusinessName, details)
	case model.JobStatusCompleted:
		return "Parking job completed. Thank you for using Parkr!"
	case model.JobStatusCancelled:
		if job.Notes != "" {
			return fmt.Sprintf("Job cancelled: %s", job.Notes)
		}
		return "Job cancelled"
	}
	return ""
}

// SlogSurface logs messages instead of displaying them. It stands in for a
// real push surface in headless deployments and tests.
type SlogSurface struct {
	Logger *slog.Logger
}

// Push logs the message at info level.
func (s *SlogSurface) Push(ctx context.Context, message string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "notification", "message", message)
}

// NopSurface drops every message. Useful in tests that do not assert on copy.
type NopSurface struct{}

// Push discards the message.
func (NopSurface) Push(context.Context, string) {}

var (
	_ Surface = (*SlogSurface)(nil)
	_ Surface = NopSurface{}
)
