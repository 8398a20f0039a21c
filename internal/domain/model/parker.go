package model

import (
	"time"

	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// VehicleInfo describes a Parker's vehicle. Display-only; no invariants attach to it.
type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
}

// Parker is a registry entry for a matching-pool participant.
//
// Parkers are never deleted; one that goes away for good is represented by
// IsOnline=false forever.
type Parker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	// IsOnline drives whether the Parker receives job offers. Toggled explicitly.
	IsOnline        bool         `json:"isOnline"`
	CurrentLocation *Coordinates `json:"currentLocation,omitempty"`

	VehicleInfo VehicleInfo `json:"vehicleInfo"`

	// Reputation fields are display-only in this core; they are not recomputed here.
	Rating    float64 `json:"rating"`
	TotalJobs int     `json:"totalJobs"`

	// CurrentJobID is set while the Parker holds an open job and excludes them
	// from receiving further offers.
	CurrentJobID string `json:"currentJobId,omitempty"`

	LastSeen time.Time `json:"lastSeen"`
}

// Available reports whether the Parker can receive job offers: online and not
// currently holding an open job.
func (p *Parker) Available() bool {
	return p.IsOnline && p.CurrentJobID == ""
}

// Validate validates the identity fields required to register a Parker.
func (p *Parker) Validate() error {
	switch {
	case p.ID == "":
		return apperrors.ValidationField("id", "parker id is required")
	case p.Name == "":
		return apperrors.ValidationField("name", "parker name is required")
	case p.Phone == "":
		return apperrors.ValidationField("phone", "parker phone is required")
	}
	return nil
}
