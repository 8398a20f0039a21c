package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/data"
	"github.com/factsuniv/Pk4/internal/directory"
	domainjob "github.com/factsuniv/Pk4/internal/domain/job"
	"github.com/factsuniv/Pk4/internal/domain/model"
	"github.com/factsuniv/Pk4/internal/identity"
	"github.com/factsuniv/Pk4/internal/kvstore"
	"github.com/factsuniv/Pk4/internal/service"
)

type routerEnv struct {
	server *httptest.Server
	jobs   *data.JobStore
	clock  *data.FixedTimeProvider
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	clock := data.NewFixedTimeProvider(time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC))

	registry, err := data.NewParkerRegistry(data.ParkerRegistryOptions{Store: kv, TimeProvider: clock})
	require.NoError(t, err)

	policy, err := domainjob.NewOfferPolicy(60 * time.Second)
	require.NoError(t, err)

	jobs, err := data.NewJobStore(data.JobStoreOptions{
		Store:        kv,
		Registry:     registry,
		OfferPolicy:  policy,
		ETA:          &domainjob.FixedETAEstimator{ETA: "12 min"},
		TimeProvider: clock,
	})
	require.NoError(t, err)

	match, err := service.NewMatchService(service.MatchServiceOptions{Feed: jobs, Watcher: kv})
	require.NoError(t, err)
	t.Cleanup(match.StopAll)

	router := NewRouter(RouterServices{
		Jobs:      jobs,
		Registry:  registry,
		Match:     match,
		Directory: directory.NewService(directory.ServiceOptions{}),
		Identity:  identity.NewService(identity.ServiceOptions{}),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &routerEnv{server: server, jobs: jobs, clock: clock}
}

func (e *routerEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createJobPayload(customerID string) map[string]any {
	return map[string]any{
		"customerId":          customerID,
		"customerName":        "John Davis",
		"customerPhone":       "(214) 555-0132",
		"businessId":          "topgolf-the-colony",
		"businessName":        "TopGolf - The Colony",
		"businessAddress":     "5151 TX-121, The Colony, TX 75056",
		"businessCoordinates": map[string]float64{"lat": 33.0884, "lng": -96.8969},
		"parkingPreference":   "best_available",
		"preferenceLabel":     "Best spot available",
		"customerPrice":       18,
		"parkerPay":           8,
		"tip":                 2,
	}
}

func (e *routerEnv) registerParker(t *testing.T, id string) {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/parkers", map[string]any{
		"id":    id,
		"name":  "Parker " + id,
		"phone": "(469) 555-0188",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func (e *routerEnv) createJob(t *testing.T, customerID string) model.Job {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/jobs", createJobPayload(customerID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[model.Job](t, resp)
}
