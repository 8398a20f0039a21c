package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
	"github.com/factsuniv/Pk4/internal/kvstore"
)

func newTestRegistry(t *testing.T) (*ParkerRegistry, *FixedTimeProvider) {
	t.Helper()

	clock := NewFixedTimeProvider(time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC))
	registry, err := NewParkerRegistry(ParkerRegistryOptions{
		Store:        kvstore.NewMemoryStore(),
		TimeProvider: clock,
	})
	require.NoError(t, err)
	return registry, clock
}

func testParker(id string) model.Parker {
	return model.Parker{
		ID:    id,
		Name:  "Mike R.",
		Phone: "(469) 555-0188",
		VehicleInfo: model.VehicleInfo{
			Make:  "Honda",
			Model: "Civic",
			Color: "Silver",
		},
		Rating: 4.9,
	}
}

func TestParkerRegistryRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new parker offline", func(t *testing.T) {
		registry, clock := newTestRegistry(t)

		parker, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)
		assert.False(t, parker.IsOnline)
		assert.Equal(t, clock.Now(), parker.LastSeen)

		got, err := registry.Get(ctx, "parker-1")
		require.NoError(t, err)
		assert.Equal(t, "Mike R.", got.Name)
	})

	t.Run("rejects an incomplete profile", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Register(ctx, model.Parker{ID: "parker-1"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("re-registering preserves the current assignment", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)
		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))

		updated := testParker("parker-1")
		updated.Name = "Michael R."
		parker, err := registry.Register(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, "Michael R.", parker.Name)
		assert.Equal(t, "job-1", parker.CurrentJobID)
	})
}

func TestParkerRegistrySetOnline(t *testing.T) {
	ctx := context.Background()

	t.Run("flips the flag and records location", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		_, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)

		loc := &model.Coordinates{Lat: 33.0982, Lng: -96.8868}
		parker, err := registry.SetOnline(ctx, "parker-1", true, loc)
		require.NoError(t, err)
		assert.True(t, parker.IsOnline)
		require.NotNil(t, parker.CurrentLocation)
		assert.Equal(t, loc.Lat, parker.CurrentLocation.Lat)

		parker, err = registry.SetOnline(ctx, "parker-1", false, nil)
		require.NoError(t, err)
		assert.False(t, parker.IsOnline)
	})

	t.Run("unregistered parker is not found", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.SetOnline(ctx, "ghost", true, nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestParkerRegistryListOnline(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	for _, id := range []string{"parker-1", "parker-2", "parker-3"} {
		_, err := registry.Register(ctx, testParker(id))
		require.NoError(t, err)
	}
	_, err := registry.SetOnline(ctx, "parker-1", true, nil)
	require.NoError(t, err)
	_, err = registry.SetOnline(ctx, "parker-2", true, nil)
	require.NoError(t, err)

	online, err := registry.ListOnline(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(online))
	for _, p := range online {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"parker-1", "parker-2"}, ids)

	t.Run("busy parkers stay online but are not available", func(t *testing.T) {
		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))

		available, err := registry.ListAvailable(ctx)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "parker-2", available[0].ID)

		online, err := registry.ListOnline(ctx)
		require.NoError(t, err)
		assert.Len(t, online, 2)
	})
}

func TestParkerRegistryAssignRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("assign then release", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		_, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)

		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))
		parker, err := registry.Get(ctx, "parker-1")
		require.NoError(t, err)
		assert.Equal(t, "job-1", parker.CurrentJobID)

		require.NoError(t, registry.Release(ctx, "parker-1", "job-1"))
		parker, err = registry.Get(ctx, "parker-1")
		require.NoError(t, err)
		assert.Empty(t, parker.CurrentJobID)
	})

	t.Run("assign conflicts with a different open job", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		_, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)

		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))
		err = registry.Assign(ctx, "parker-1", "job-2")
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		// Re-assigning the same job is idempotent.
		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))
	})

	t.Run("release with a mismatched job is a no-op", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		_, err := registry.Register(ctx, testParker("parker-1"))
		require.NoError(t, err)
		require.NoError(t, registry.Assign(ctx, "parker-1", "job-1"))

		require.NoError(t, registry.Release(ctx, "parker-1", "job-9"))
		parker, err := registry.Get(ctx, "parker-1")
		require.NoError(t, err)
		assert.Equal(t, "job-1", parker.CurrentJobID)
	})

	t.Run("assign to an unknown parker is not found", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		err := registry.Assign(ctx, "ghost", "job-1")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
