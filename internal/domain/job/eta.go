package job

import (
	"fmt"
	"math/rand"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

// ETAEstimator estimates a Parker's arrival time at a business. It is a
// pluggable strategy so real routing can replace the placeholder without
// touching the state machine.
type ETAEstimator interface {
	Estimate(parker *model.Parker, destination model.Coordinates) string
}

// RandomETAEstimator is the placeholder estimator used in absence of real
// routing data: a uniform 5-20 minute guess, matching the product's live
// dashboard copy ("12 min").
type RandomETAEstimator struct {
	rng *rand.Rand
}

// NewRandomETAEstimator constructs a RandomETAEstimator. A nil source falls
// back to the shared global generator.
func NewRandomETAEstimator(src rand.Source) *RandomETAEstimator {
	e := &RandomETAEstimator{}
	if src != nil {
		e.rng = rand.New(src)
	}
	return e
}

// Estimate returns a human display string such as "12 min".
func (e *RandomETAEstimator) Estimate(_ *model.Parker, _ model.Coordinates) string {
	var minutes int
	if e.rng != nil {
		minutes = e.rng.Intn(15) + 5
	} else {
		minutes = rand.Intn(15) + 5
	}
	return fmt.Sprintf("%d min", minutes)
}

// FixedETAEstimator always returns the same estimate. Used in tests.
type FixedETAEstimator struct {
	ETA string
}

// Estimate returns the fixed estimate.
func (e *FixedETAEstimator) Estimate(_ *model.Parker, _ model.Coordinates) string {
	return e.ETA
}

var (
	_ ETAEstimator = (*RandomETAEstimator)(nil)
	_ ETAEstimator = (*FixedETAEstimator)(nil)
)
