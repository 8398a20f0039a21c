package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	t.Run("parses a comma-delimited list", func(t *testing.T) {
		services, err := ParseServices("http, sweeper")
		require.NoError(t, err)
		assert.True(t, services[ServiceModeHTTP])
		assert.True(t, services[ServiceModeSweeper])
	})

	t.Run("rejects unknown service names", func(t *testing.T) {
		_, err := ParseServices("http,scheduler")
		require.Error(t, err)
	})

	t.Run("rejects an empty list", func(t *testing.T) {
		_, err := ParseServices("")
		require.Error(t, err)
	})
}

func TestAppConfigSanitize(t *testing.T) {
	t.Run("clamps out-of-range values", func(t *testing.T) {
		cfg := AppConfig{
			Store:   StoreConfig{Backend: "postgres"},
			Engine:  EngineConfig{OfferWindow: -time.Second},
			Sweeper: SweeperConfig{Interval: 0, Retention: 0},
		}
		cfg.Sanitize()

		assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
		assert.Equal(t, 60*time.Second, cfg.Engine.OfferWindow)
		assert.Equal(t, time.Second, cfg.Sweeper.Interval)
		assert.Equal(t, time.Minute, cfg.Sweeper.Retention)
	})

	t.Run("NODE_ENV=development enables dev mode", func(t *testing.T) {
		t.Setenv("NODE_ENV", "development")

		cfg := AppConfig{}
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})
}

func TestAppConfigEnabledServices(t *testing.T) {
	cfg := AppConfig{Services: "http"}
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.False(t, cfg.IsSweeperEnabled())

	cfg.Services = "nonsense"
	assert.False(t, cfg.IsHTTPServerEnabled())
}
