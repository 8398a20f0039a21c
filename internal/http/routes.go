package httpx

import (
	"log/slog"
	"net/http"

	"github.com/factsuniv/Pk4/internal/data"
	"github.com/factsuniv/Pk4/internal/directory"
	"github.com/factsuniv/Pk4/internal/identity"
	"github.com/factsuniv/Pk4/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs      *data.JobStore
	Registry  *data.ParkerRegistry
	Match     *service.MatchService
	Directory *directory.Service
	Identity  *identity.Service
	Logger    *slog.Logger // Optional: request-path warnings
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	registerJobRoutes(mux, &JobHandlers{Jobs: services.Jobs})
	registerParkerRoutes(mux, &ParkerHandlers{Registry: services.Registry})
	registerDirectoryRoutes(mux, &DirectoryHandlers{Directory: services.Directory})
	registerAuthRoutes(mux, &AuthHandlers{Identity: services.Identity})

	mux.HandleFunc("GET /ws/jobs", (&StreamHandlers{Match: services.Match, Logger: services.Logger}).Jobs)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("POST /api/jobs", h.CreateJob)
	mux.HandleFunc("GET /api/jobs", h.ListAll)
	mux.HandleFunc("GET /api/jobs/stats", h.Stats)
	mux.HandleFunc("GET /api/preferences", h.Preferences)
	mux.HandleFunc("GET /api/jobs/{id}", h.GetJob)
	mux.HandleFunc("POST /api/jobs/{id}/accept", h.Accept)
	mux.HandleFunc("POST /api/jobs/{id}/status", h.UpdateStatus)
	mux.HandleFunc("POST /api/jobs/{id}/cancel", h.Cancel)
	mux.HandleFunc("GET /api/parkers/{id}/jobs", h.ParkerFeed)
	mux.HandleFunc("GET /api/customers/{id}/job", h.CustomerJob)
}

func registerParkerRoutes(mux *http.ServeMux, h *ParkerHandlers) {
	mux.HandleFunc("POST /api/parkers", h.Register)
	mux.HandleFunc("GET /api/parkers", h.ListOnline)
	mux.HandleFunc("GET /api/parkers/{id}", h.Get)
	mux.HandleFunc("POST /api/parkers/{id}/presence", h.SetOnline)
}

func registerDirectoryRoutes(mux *http.ServeMux, h *DirectoryHandlers) {
	mux.HandleFunc("GET /api/businesses", h.Search)
	mux.HandleFunc("GET /api/businesses/suggest", h.Suggest)
	mux.HandleFunc("GET /api/businesses/popular", h.Popular)
	mux.HandleFunc("GET /api/businesses/nearby", h.Nearby)
	mux.HandleFunc("GET /api/businesses/categories", h.Categories)
	mux.HandleFunc("GET /api/businesses/{id}", h.Get)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
}
