package model

// ParkingPreference identifies one of the three fixed service tiers.
type ParkingPreference string

const (
	// PreferenceJustInLot is basic parking anywhere in the lot.
	PreferenceJustInLot ParkingPreference = "just_in_lot"
	// PreferenceBestAvailable is a quality spot with good access and a reasonable walk.
	PreferenceBestAvailable ParkingPreference = "best_available"
	// PreferenceAtTheFront is premium front-entrance parking with minimal walking.
	PreferenceAtTheFront ParkingPreference = "at_the_front"
)

// Valid returns true if the ParkingPreference is one of the three fixed tiers.
func (p ParkingPreference) Valid() bool {
	return p == PreferenceJustInLot || p == PreferenceBestAvailable || p == PreferenceAtTheFront
}

// PreferenceTier describes one service tier of the booking flow, including the
// customer price and Parker payout for that tier.
type PreferenceTier struct {
	ID            ParkingPreference `json:"id"`
	Label         string            `json:"label"`
	Description   string            `json:"description"`
	CustomerPrice float64           `json:"customerPrice"`
	ParkerPay     float64           `json:"parkerPay"`
	EstimatedTime string            `json:"estimatedTime"`
	Features      []string          `json:"features"`
}

// ParkingPreferences is the fixed three-tier pricing catalogue shown in the
// booking flow. Prices are per-tier and the source of the customerPrice and
// parkerPay fields on a created job.
var ParkingPreferences = []PreferenceTier{
	{
		ID:            PreferenceJustInLot,
		Label:         "Just in the lot",
		Description:   "Basic parking anywhere in the lot",
		CustomerPrice: 12,
		ParkerPay:     7,
		EstimatedTime: "5-10 min",
		Features:      []string{"Cheapest option", "Quick service", "Any available spot"},
	},
	{
		ID:            PreferenceBestAvailable,
		Label:         "Best spot available",
		Description:   "Quality spot with good access and reasonable walk",
		CustomerPrice: 18,
		ParkerPay:     8,
		EstimatedTime: "8-15 min",
		Features:      []string{"Better location", "Shorter walk", "Good value"},
	},
	{
		ID:            PreferenceAtTheFront,
		Label:         "At the front",
		Description:   "Premium front entrance parking, minimal walking",
		CustomerPrice: 25,
		ParkerPay:     8.5,
		EstimatedTime: "10-20 min",
		Features:      []string{"Premium location", "Minimal walk", "Best experience"},
	},
}

// PreferenceTierByID returns the tier for the given preference id, or nil when
// the id is not one of the fixed tiers.
func PreferenceTierByID(id ParkingPreference) *PreferenceTier {
	for i := range ParkingPreferences {
		if ParkingPreferences[i].ID == id {
			return &ParkingPreferences[i]
		}
	}
	return nil
}
