package job

import (
	"time"

	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// ErrInvalidOfferWindow indicates the configured default offer window is not positive.
var ErrInvalidOfferWindow = apperrors.Validation("default offer window must be positive")

// minOfferWindow is the shortest acceptance window the policy will hand out.
// Anything shorter gives Parkers no realistic chance to claim the job.
const minOfferWindow = 5 * time.Second

// WindowSource identifies how an offer window was resolved.
type WindowSource string

const (
	// WindowSourceExplicit indicates the caller supplied a usable duration.
	WindowSourceExplicit WindowSource = "explicit"
	// WindowSourceDefault indicates the default window was used.
	WindowSourceDefault WindowSource = "default"
	// WindowSourceClamped indicates the requested window was clamped to the minimum.
	WindowSourceClamped WindowSource = "clamped"
)

// OfferPolicy normalises acceptance windows for job offers and decides whether
// an offer is still acceptable. Expiry is enforced hard by the engine; the
// client countdown is display only.
type OfferPolicy struct {
	defaultWindow time.Duration
}

// NewOfferPolicy constructs an OfferPolicy with the provided default window.
func NewOfferPolicy(defaultWindow time.Duration) (*OfferPolicy, error) {
	if defaultWindow <= 0 {
		return nil, ErrInvalidOfferWindow
	}
	return &OfferPolicy{defaultWindow: defaultWindow}, nil
}

// Default returns the configured default offer window.
func (p *OfferPolicy) Default() time.Duration {
	if p == nil {
		return 0
	}
	return p.defaultWindow
}

// WindowDecision captures the outcome of resolving an offer window request.
type WindowDecision struct {
	Window    time.Duration
	Source    WindowSource
	Requested time.Duration
}

// UsedDefault reports whether the policy fell back to the default window.
func (d WindowDecision) UsedDefault() bool {
	return d.Source == WindowSourceDefault
}

// Clamped reports whether the requested window was clamped to the minimum.
func (d WindowDecision) Clamped() bool {
	return d.Source == WindowSourceClamped
}

// Resolve normalises the requested acceptance window. Zero means "use the
// default"; sub-minimum requests are clamped.
func (p *OfferPolicy) Resolve(request time.Duration) WindowDecision {
	decision := WindowDecision{Requested: request}
	if p == nil {
		decision.Source = WindowSourceDefault
		return decision
	}

	switch {
	case request >= minOfferWindow:
		decision.Window = request
		decision.Source = WindowSourceExplicit
	case request > 0:
		decision.Window = minOfferWindow
		decision.Source = WindowSourceClamped
	default:
		decision.Window = p.defaultWindow
		decision.Source = WindowSourceDefault
	}
	return decision
}

// Expired reports whether an offer with the given deadline is past acceptance
// at the given instant.
func (p *OfferPolicy) Expired(deadline, now time.Time) bool {
	return !now.Before(deadline)
}
