package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

func registerPayload(id string) map[string]any {
	return map[string]any{
		"id":    id,
		"name":  "Sarah Parker",
		"phone": "(214) 555-0198",
		"vehicleInfo": map[string]string{
			"make":         "Honda",
			"model":        "Civic",
			"color":        "Silver",
			"licensePlate": "ABC-1234",
		},
	}
}

func TestParkerEndpoints(t *testing.T) {
	env := newRouterEnv(t)

	t.Run("register", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/parkers", registerPayload("parker-1"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		parker := decodeBody[model.Parker](t, resp)
		assert.False(t, parker.IsOnline)
	})

	t.Run("incomplete profile is a validation error", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/parkers", map[string]any{"id": "parker-2"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("presence flips online with a location", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/parkers/parker-1/presence", map[string]any{
			"isOnline": true,
			"location": map[string]float64{"lat": 33.0884, "lng": -96.8969},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		parker := decodeBody[model.Parker](t, resp)
		assert.True(t, parker.IsOnline)
		require.NotNil(t, parker.CurrentLocation)
	})

	t.Run("presence for an unregistered parker is 404", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/parkers/ghost/presence", map[string]any{"isOnline": true})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list online", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/parkers", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		parkers := decodeBody[[]model.Parker](t, resp)
		require.Len(t, parkers, 1)
		assert.Equal(t, "parker-1", parkers[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/parkers/parker-1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		parker := decodeBody[model.Parker](t, resp)
		assert.Equal(t, "Sarah Parker", parker.Name)
	})
}
