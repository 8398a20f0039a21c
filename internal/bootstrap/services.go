package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/factsuniv/Pk4/config"
	"github.com/factsuniv/Pk4/internal/data"
	"github.com/factsuniv/Pk4/internal/directory"
	domainjob "github.com/factsuniv/Pk4/internal/domain/job"
	"github.com/factsuniv/Pk4/internal/identity"
	"github.com/factsuniv/Pk4/internal/kvstore"
	"github.com/factsuniv/Pk4/internal/notify"
	"github.com/factsuniv/Pk4/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Registry  *data.ParkerRegistry
	Jobs      *data.JobStore
	Match     *service.MatchService
	Sweeper   *service.SweeperService
	Directory *directory.Service
	Identity  *identity.Service
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Store  kvstore.Store
	Logger *slog.Logger
}

// NewServices wires the full service graph on top of the shared store.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, fmt.Errorf("service deps and config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := data.NewParkerRegistry(data.ParkerRegistryOptions{
		Store:  deps.Store,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build parker registry: %w", err)
	}

	offerPolicy, err := domainjob.NewOfferPolicy(deps.Config.Engine.OfferWindow)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build offer policy: %w", err)
	}

	jobs, err := data.NewJobStore(data.JobStoreOptions{
		Store:       deps.Store,
		Registry:    registry,
		OfferPolicy: offerPolicy,
		Surface:     &notify.SlogSurface{Logger: logger},
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build job store: %w", err)
	}

	match, err := service.NewMatchService(service.MatchServiceOptions{
		Feed:    jobs,
		Watcher: deps.Store,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build match service: %w", err)
	}

	sweeper, err := service.NewSweeperService(service.SweeperServiceOptions{
		Sweeper: jobs,
		Config:  deps.Config.Sweeper,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build sweeper service: %w", err)
	}

	return ServiceContainer{
		Registry:  registry,
		Jobs:      jobs,
		Match:     match,
		Sweeper:   sweeper,
		Directory: directory.NewService(directory.ServiceOptions{Logger: logger}),
		Identity:  identity.NewService(identity.ServiceOptions{Logger: logger}),
	}, nil
}
