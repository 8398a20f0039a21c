package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/domain/model"
	apperrors "github.com/factsuniv/Pk4/internal/errors"
)

func TestServiceSearch(t *testing.T) {
	svc := NewService(ServiceOptions{})

	t.Run("matches names case-insensitively", func(t *testing.T) {
		results := svc.Search("topgolf", SearchOptions{})
		require.NotEmpty(t, results)
		assert.Equal(t, "topgolf-the-colony", results[0].ID)
	})

	t.Run("matches tags", func(t *testing.T) {
		results := svc.Search("cowboys", SearchOptions{})
		require.Len(t, results, 1)
		assert.Equal(t, "the-star-frisco", results[0].ID)
	})

	t.Run("prefix name matches rank first", func(t *testing.T) {
		results := svc.Search("legacy", SearchOptions{})
		require.NotEmpty(t, results)
		assert.Equal(t, "Legacy West", results[0].Name)
	})

	t.Run("category filter", func(t *testing.T) {
		results := svc.Search("", SearchOptions{Category: "Shopping Mall"})
		require.Len(t, results, 2)
		for _, b := range results {
			assert.Equal(t, "Shopping Mall", b.Category)
		}
	})

	t.Run("empty query returns the catalogue head", func(t *testing.T) {
		results := svc.Search("", SearchOptions{Limit: 3})
		assert.Len(t, results, 3)
	})

	t.Run("no matches", func(t *testing.T) {
		results := svc.Search("zzzzz", SearchOptions{})
		assert.Empty(t, results)
	})
}

func TestServiceGetByID(t *testing.T) {
	svc := NewService(ServiceOptions{})

	business, err := svc.GetByID("grandscape")
	require.NoError(t, err)
	assert.Equal(t, "Grandscape", business.Name)

	_, err = svc.GetByID("missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestServicePopular(t *testing.T) {
	svc := NewService(ServiceOptions{})

	popular := svc.Popular(3)
	require.Len(t, popular, 3)
	// Extreme demand ranks above very high.
	assert.Equal(t, "legacy-west", popular[0].ID)
	for _, b := range popular {
		assert.GreaterOrEqual(t, b.ParkingDemand.rank(), DemandHigh.rank())
	}
}

func TestServiceNearby(t *testing.T) {
	svc := NewService(ServiceOptions{})

	// Grandscape and TopGolf sit a few hundred meters apart in The Colony.
	nearby := svc.Nearby(model.Coordinates{Lat: 33.089, Lng: -96.896}, 2, 10)
	require.Len(t, nearby, 2)
	ids := []string{nearby[0].ID, nearby[1].ID}
	assert.ElementsMatch(t, []string{"grandscape", "topgolf-the-colony"}, ids)
}

func TestServiceSuggest(t *testing.T) {
	svc := NewService(ServiceOptions{})

	suggestions := svc.Suggest("shop", 8)
	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions, "Shopping Mall")
	assert.Contains(t, suggestions, "Shopping")

	assert.Empty(t, svc.Suggest("", 8))
}

func TestServiceCategories(t *testing.T) {
	svc := NewService(ServiceOptions{})

	categories := svc.Categories()
	assert.Contains(t, categories, "Entertainment")
	assert.Contains(t, categories, "Business District")
	assert.IsNonDecreasing(t, categories)
}

func TestInServiceArea(t *testing.T) {
	assert.True(t, InServiceArea(model.Coordinates{Lat: 33.0751, Lng: -96.8236}))  // Plano
	assert.False(t, InServiceArea(model.Coordinates{Lat: 32.7767, Lng: -96.7970})) // Dallas proper
}
