package config

import "time"

// EngineConfig contains matching engine configuration.
type EngineConfig struct {
	// OfferWindow is how long a new job stays offered to Parkers before the
	// sweeper cancels it as unclaimed.
	OfferWindow time.Duration `env:"OFFER_WINDOW" envDefault:"60s"`
}

// Sanitize applies guardrails to engine configuration values.
func (e *EngineConfig) Sanitize() {
	if e.OfferWindow <= 0 {
		e.OfferWindow = 60 * time.Second
	}
}

// SweeperConfig contains job hygiene sweeper configuration.
type SweeperConfig struct {
	// Interval is the sweeper tick interval.
	Interval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`

	// Retention is how long terminal jobs stay visible before removal,
	// measured from creation.
	Retention time.Duration `env:"JOB_RETENTION" envDefault:"24h"`
}

// Sanitize applies guardrails to sweeper configuration values.
func (s *SweeperConfig) Sanitize() {
	if s.Interval < time.Second {
		s.Interval = time.Second
	}
	if s.Retention < time.Minute {
		s.Retention = time.Minute
	}
}
