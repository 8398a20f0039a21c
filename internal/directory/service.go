package directory

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

// ServiceOptions groups dependencies for Service.
type ServiceOptions struct {
	Catalogue []Business   // Optional: defaults to the Collin County seed
	Logger    *slog.Logger // Optional: structured logger
}

// Service answers business lookups against an in-memory catalogue. The
// catalogue is immutable after construction, so reads need no locking.
type Service struct {
	businesses []Business
	byID       map[string]int
	categories []string
	logger     *slog.Logger
}

// NewService constructs a directory Service.
func NewService(opts ServiceOptions) *Service {
	catalogue := opts.Catalogue
	if catalogue == nil {
		catalogue = DefaultCatalogue()
	}

	byID := make(map[string]int, len(catalogue))
	seen := make(map[string]struct{})
	var categories []string
	for i, b := range catalogue {
		byID[b.ID] = i
		if _, ok := seen[b.Category]; !ok {
			seen[b.Category] = struct{}{}
			categories = append(categories, b.Category)
		}
	}
	sort.Strings(categories)

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "directory")
		logger.Debug("directory initialized", "businesses", len(catalogue))
	}

	return &Service{
		businesses: catalogue,
		byID:       byID,
		categories: categories,
		logger:     logger,
	}
}

// SearchOptions refine a Search call.
type SearchOptions struct {
	Category string
	Limit    int
}

const defaultSearchLimit = 10

// Search matches the query against names, addresses, descriptions, categories,
// and tags. Exact and prefix name matches rank first. An empty query with no
// category returns the head of the catalogue.
func (s *Service) Search(query string, opts SearchOptions) []Business {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && opts.Category == "" {
		return append([]Business(nil), s.businesses[:min(limit, len(s.businesses))]...)
	}

	var results []Business
	for _, b := range s.businesses {
		if opts.Category != "" && !strings.EqualFold(b.Category, opts.Category) {
			continue
		}
		if q != "" && !matchesQuery(&b, q) {
			continue
		}
		results = append(results, b)
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := nameRank(&results[i], q), nameRank(&results[j], q)
		if ri != rj {
			return ri > rj
		}
		return results[i].Name < results[j].Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func matchesQuery(b *Business, q string) bool {
	if strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Address), q) ||
		strings.Contains(strings.ToLower(b.Description), q) ||
		strings.Contains(strings.ToLower(b.Category), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// nameRank scores how directly a business name matches the query: exact
// matches beat prefixes beat everything else.
func nameRank(b *Business, q string) int {
	name := strings.ToLower(b.Name)
	switch {
	case q == "":
		return 0
	case name == q:
		return 2
	case strings.HasPrefix(name, q):
		return 1
	}
	return 0
}

// GetByID returns the business with the given id.
func (s *Service) GetByID(id string) (*Business, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFoundf("business %s not found", id)
	}
	b := s.businesses[idx]
	return &b, nil
}

// Categories returns the distinct catalogue categories, sorted.
func (s *Service) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Popular returns the highest-demand businesses, most contested first.
func (s *Service) Popular(limit int) []Business {
	if limit <= 0 {
		limit = 6
	}

	var results []Business
	for _, b := range s.businesses {
		if b.ParkingDemand.rank() >= DemandHigh.rank() {
			results = append(results, b)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ParkingDemand.rank() > results[j].ParkingDemand.rank()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Nearby returns businesses within radiusKm of the location, closest first.
func (s *Service) Nearby(location model.Coordinates, radiusKm float64, limit int) []Business {
	if radiusKm <= 0 {
		radiusKm = 10
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var results []Business
	for _, b := range s.businesses {
		if distanceKm(location, b.Coordinates) <= radiusKm {
			results = append(results, b)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return distanceKm(location, results[i].Coordinates) < distanceKm(location, results[j].Coordinates)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Suggest returns autocomplete candidates drawn from business names,
// categories, and tags.
func (s *Service) Suggest(query string, limit int) []string {
	if limit <= 0 {
		limit = 8
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var suggestions []string
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		suggestions = append(suggestions, v)
	}

	for _, b := range s.businesses {
		if strings.Contains(strings.ToLower(b.Name), q) {
			add(b.Name)
		}
	}
	for _, c := range s.categories {
		if strings.Contains(strings.ToLower(c), q) {
			add(c)
		}
	}
	for _, b := range s.businesses {
		for _, tag := range b.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				add(strings.ToUpper(tag[:1]) + tag[1:])
			}
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
