package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"immolist/server/internal/models"
)

func TestSearchFiltersAndSorts(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := testListings()

	q := DefaultQuery(testCeiling)
	q.Category = "Apartment"
	q.Sort = SortPriceAsc

	result := engine.Search(listings, q)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "3", result.Listings[0].ID)
	assert.Equal(t, "1", result.Listings[1].ID)
}

func TestSearchVillaScenario(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := []models.Listing{
		{ID: "A", Price: 100000, Category: "Villa", IsAvailable: true},
		{ID: "B", Price: 500000, Category: "Appartement", IsAvailable: false},
		{ID: "C", Price: 250000, Category: "Villa", IsAvailable: true},
	}

	q := DefaultQuery(testCeiling)
	q.Category = "Villa"
	q.PriceMax = 300000
	q.Sort = SortPriceAsc

	result := engine.Search(listings, q)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "A", result.Listings[0].ID)
	assert.Equal(t, "C", result.Listings[1].ID)
}

func TestSearchClampsQuery(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := testListings()

	q := DefaultQuery(testCeiling)
	q.PriceMin = -100
	q.PriceMax = testCeiling * 10

	result := engine.Search(listings, q)
	assert.Equal(t, 4, result.Count)
}

func TestSearchEmptyResult(t *testing.T) {
	engine := NewEngine(testCeiling)

	result := engine.Search(testListings(), Query{
		Category: "Castle",
		PriceMax: testCeiling,
		Sort:     SortNewest,
	})
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Listings)
	assert.NotNil(t, result.Listings)
}

func TestLatestSortsBeforeTruncating(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := testListings()

	latest := engine.Latest(listings, 2)
	assert.Len(t, latest, 2)
	assert.Equal(t, "3", latest[0].ID)
	assert.Equal(t, "2", latest[1].ID)

	// A limit beyond the collection returns everything.
	assert.Len(t, engine.Latest(listings, 50), len(listings))
}

func TestRelated(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := []models.Listing{
		{ID: "1", Category: "Apartment", IsAvailable: true,
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Category: "apartment", IsAvailable: true,
			CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Category: "Apartment", IsAvailable: false,
			CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "4", Category: "Villa", IsAvailable: true,
			CreatedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "5", Category: "Apartment", IsAvailable: true,
			CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	related := engine.Related(listings, &listings[0], 4)

	// Case-insensitive category match, self and unavailable excluded,
	// newest first.
	assert.Equal(t, []string{"5", "2"}, []string{related[0].ID, related[1].ID})
	assert.Len(t, related, 2)
}

func TestRelatedTruncates(t *testing.T) {
	engine := NewEngine(testCeiling)
	listings := make([]models.Listing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, models.Listing{
			ID: string(rune('a' + i)), Category: "Villa", IsAvailable: true,
			CreatedAt: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}

	related := engine.Related(listings, &listings[0], 4)
	assert.Len(t, related, 4)
	assert.Equal(t, "j", related[0].ID)
}

func TestRelatedNoCategory(t *testing.T) {
	engine := NewEngine(testCeiling)
	current := models.Listing{ID: "x"}

	assert.Nil(t, engine.Related(testListings(), &current, 4))
}

func TestFindByID(t *testing.T) {
	listings := testListings()

	found := FindByID(listings, "3")
	if assert.NotNil(t, found) {
		assert.Equal(t, "Studio Agdal", found.Title)
	}
	assert.Nil(t, FindByID(listings, "missing"))
}
