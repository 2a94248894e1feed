package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"immolist/server/internal/models"
)

func coord(v float64) *float64 {
	return &v
}

func located(id string, lat, lon float64, available bool) models.Listing {
	return models.Listing{
		ID:          id,
		Latitude:    coord(lat),
		Longitude:   coord(lon),
		IsAvailable: available,
	}
}

func TestDistance(t *testing.T) {
	// Casablanca to Rabat is roughly 87 km.
	casa := located("casa", 33.5731, -7.5898, true)
	rabat := located("rabat", 34.0209, -6.8416, true)

	d, ok := Distance(&casa, &rabat)
	assert.True(t, ok)
	assert.InDelta(t, 87000, d, 5000)

	// Same point
	d, ok = Distance(&casa, &casa)
	assert.True(t, ok)
	assert.InDelta(t, 0, d, 1)
}

func TestDistanceMissingCoordinates(t *testing.T) {
	casa := located("casa", 33.5731, -7.5898, true)
	nowhere := models.Listing{ID: "x"}

	_, ok := Distance(&casa, &nowhere)
	assert.False(t, ok)
	_, ok = Distance(&nowhere, &casa)
	assert.False(t, ok)
}

func TestNearbyOrdersByDistance(t *testing.T) {
	current := located("current", 33.5731, -7.5898, true) // Casablanca
	listings := []models.Listing{
		located("rabat", 34.0209, -6.8416, true),      // ~87 km
		located("marrakech", 31.6295, -7.9811, true),  // ~215 km
		located("mohammedia", 33.6866, -7.3830, true), // ~23 km
		current,
	}

	nearby := Nearby(listings, &current, 6)
	assert.Len(t, nearby, 3)
	assert.Equal(t, "mohammedia", nearby[0].ID)
	assert.Equal(t, "rabat", nearby[1].ID)
	assert.Equal(t, "marrakech", nearby[2].ID)
}

func TestNearbySkipsUnusable(t *testing.T) {
	current := located("current", 33.5731, -7.5898, true)
	listings := []models.Listing{
		located("sold", 33.6, -7.6, false),
		{ID: "no-coords", IsAvailable: true},
		located("ok", 33.7, -7.5, true),
		current,
	}

	nearby := Nearby(listings, &current, 6)
	assert.Len(t, nearby, 1)
	assert.Equal(t, "ok", nearby[0].ID)
}

func TestNearbyTruncates(t *testing.T) {
	current := located("current", 33.5731, -7.5898, true)
	listings := []models.Listing{
		located("a", 33.58, -7.59, true),
		located("b", 33.59, -7.59, true),
		located("c", 33.60, -7.59, true),
	}

	nearby := Nearby(listings, &current, 2)
	assert.Len(t, nearby, 2)
	assert.Equal(t, "a", nearby[0].ID)
	assert.Equal(t, "b", nearby[1].ID)
}

func TestNearbyWithoutOrigin(t *testing.T) {
	current := models.Listing{ID: "current", IsAvailable: true}
	listings := []models.Listing{located("a", 33.58, -7.59, true)}

	assert.Nil(t, Nearby(listings, &current, 6))
}
