// Package identity is the toy account provider the live system trusts as
// given. It exists so the HTTP surface and demo seeding have somewhere to
// resolve customers and Parkers from; real authentication is out of scope.
package identity

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleParker   Role = "parker"
)

// Profile is a demo account record.
type Profile struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	Phone          string            `json:"phone"`
	Role           Role              `json:"role"`
	MembershipTier string            `json:"membershipTier"`
	TotalTrips     int               `json:"totalTrips"`
	Rating         float64           `json:"rating"`
	TotalEarnings  float64           `json:"totalEarnings,omitempty"`
	ServiceArea    []string          `json:"serviceArea,omitempty"`
	VehicleInfo    model.VehicleInfo `json:"vehicleInfo,omitempty"`

	// password stays private to the package; this is demo-grade plumbing,
	// not an auth system.
	password string
}

// seedAccount pairs a profile with its demo password.
type seedAccount struct {
	profile  Profile
	password string
}

func demoAccounts() []seedAccount {
	return []seedAccount{
		{
			password: "demo123",
			profile: Profile{
				Email:          "demo@parkr.com",
				Name:           "Alex Johnson",
				Phone:          "(469) 555-0123",
				Role:           RoleCustomer,
				MembershipTier: "Premium",
				TotalTrips:     47,
				Rating:         4.8,
			},
		},
		{
			password: "test123",
			profile: Profile{
				Email:          "customer@test.com",
				Name:           "Jane Customer",
				Phone:          "(214) 555-0156",
				Role:           RoleCustomer,
				MembershipTier: "Basic",
				TotalTrips:     12,
				Rating:         4.5,
			},
		},
		{
			password: "parker123",
			profile: Profile{
				Email:          "parker@parkr.com",
				Name:           "Sarah Parker",
				Phone:          "(214) 555-0198",
				Role:           RoleParker,
				MembershipTier: "Basic",
				TotalTrips:     156,
				Rating:         4.9,
				TotalEarnings:  2847.60,
				ServiceArea:    []string{"Legacy", "Frisco", "Plano", "The Colony"},
				VehicleInfo: model.VehicleInfo{
					Make:         "Honda",
					Model:        "Civic",
					Color:        "Silver",
					LicensePlate: "ABC-1234",
				},
			},
		},
		{
			password: "test123",
			profile: Profile{
				Email:          "driver@test.com",
				Name:           "Mike Rodriguez",
				Phone:          "(972) 555-0187",
				Role:           RoleParker,
				MembershipTier: "Basic",
				TotalTrips:     89,
				Rating:         4.7,
				TotalEarnings:  1654.30,
				ServiceArea:    []string{"Downtown Dallas", "Deep Ellum", "Uptown"},
				VehicleInfo: model.VehicleInfo{
					Make:         "Toyota",
					Model:        "Camry",
					Color:        "Blue",
					LicensePlate: "XYZ-5678",
				},
			},
		},
	}
}

// ServiceOptions groups dependencies for Service.
type ServiceOptions struct {
	Logger *slog.Logger // Optional: structured logger
}

// Service holds demo accounts in memory, keyed by email.
type Service struct {
	logger *slog.Logger

	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewService constructs an identity Service seeded with the demo accounts.
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "identity")
	}

	profiles := make(map[string]*Profile)
	for _, seed := range demoAccounts() {
		p := seed.profile
		p.ID = uuid.New().String()
		p.password = seed.password
		profiles[strings.ToLower(p.Email)] = &p
	}

	return &Service{logger: logger, profiles: profiles}
}

// Authenticate checks an email/password pair and returns the matching
// profile. Wrong password and unknown email are indistinguishable to callers.
func (s *Service) Authenticate(email, password string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[strings.ToLower(strings.TrimSpace(email))]
	if !ok || profile.password != password {
		return nil, apperrors.Validation("invalid email or password")
	}
	out := *profile
	return &out, nil
}

// GetByEmail returns the profile registered under the given email.
func (s *Service) GetByEmail(email string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, apperrors.NotFoundf("account %s not found", email)
	}
	out := *profile
	return &out, nil
}

// Register adds a new account. Demo conveniences apply: the account is
// immediately usable and nothing is verified.
func (s *Service) Register(email, password, name string, role Role) (*Profile, error) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return nil, apperrors.ValidationField("email", "email is required")
	case password == "":
		return nil, apperrors.ValidationField("password", "password is required")
	case name == "":
		return nil, apperrors.ValidationField("name", "name is required")
	case role != RoleCustomer && role != RoleParker:
		return nil, apperrors.ValidationField("role", "role must be customer or parker")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.profiles[key]; ok {
		return nil, apperrors.Conflictf("account %s already exists", email)
	}

	profile := &Profile{
		ID:             uuid.New().String(),
		Email:          email,
		Name:           name,
		Role:           role,
		MembershipTier: "Basic",
		password:       password,
	}
	s.profiles[key] = profile

	if s.logger != nil {
		s.logger.Info("account registered", "email", email, "role", role)
	}
	out := *profile
	return &out, nil
}

// ListByRole returns all profiles with the given role.
func (s *Service) ListByRole(role Role) []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Profile
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out
}
