// Package directory provides the Collin County business lookup the booking
// flow consults. The catalogue is a static seed; a production deployment
// would back this with a places API.
package directory

import (
	"math"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

// ParkingDemand grades how contested parking is at a business.
type ParkingDemand string

const (
	DemandLow      ParkingDemand = "low"
	DemandMedium   ParkingDemand = "medium"
	DemandHigh     ParkingDemand = "high"
	DemandVeryHigh ParkingDemand = "very high"
	DemandExtreme  ParkingDemand = "extreme"
)

// rank orders demand grades for popularity sorting. Unknown grades sort last.
func (d ParkingDemand) rank() int {
	switch d {
	case DemandExtreme:
		return 4
	case DemandVeryHigh:
		return 3
	case DemandHigh:
		return 2
	case DemandMedium:
		return 1
	case DemandLow:
		return 0
	}
	return -1
}

// Business is a directory entry a customer can book parking for.
type Business struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Address       string            `json:"address"`
	Coordinates   model.Coordinates `json:"coordinates"`
	Phone         string            `json:"phone,omitempty"`
	Description   string            `json:"description"`
	Tags          []string          `json:"tags"`
	ParkingDemand ParkingDemand     `json:"averageParkingDemand"`
	PeakHours     []string          `json:"peakHours"`
}

// serviceArea is the Collin County bounding box. Coarse on purpose; the
// launch market is defined by county lines, not a radius.
var serviceArea = struct {
	latMin, latMax float64
	lngMin, lngMax float64
}{
	latMin: 32.945, latMax: 33.372,
	lngMin: -96.935, lngMax: -96.402,
}

// InServiceArea reports whether a coordinate falls inside the launch market.
func InServiceArea(c model.Coordinates) bool {
	return c.Lat >= serviceArea.latMin && c.Lat <= serviceArea.latMax &&
		c.Lng >= serviceArea.lngMin && c.Lng <= serviceArea.lngMax
}

// distanceKm computes the haversine distance between two coordinates.
func distanceKm(a, b model.Coordinates) float64 {
	const earthRadiusKm = 6371

	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
