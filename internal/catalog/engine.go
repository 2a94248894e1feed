package catalog

import (
	"strings"

	"immolist/server/internal/models"
)

// Engine evaluates catalog queries over an in-memory listing collection.
// Evaluation is pure: the same query over the same collection always yields
// the same ordered result, and the input slice is never mutated.
type Engine struct {
	priceCeiling int64
}

func NewEngine(priceCeiling int64) *Engine {
	return &Engine{priceCeiling: priceCeiling}
}

// PriceCeiling returns the upper bound of the engine's price range.
func (e *Engine) PriceCeiling() int64 {
	return e.priceCeiling
}

// Result is the rendered projection of one query evaluation.
type Result struct {
	Count    int              `json:"count"`
	Listings []models.Listing `json:"listings"`
}

// Search filters the collection with the query's predicate set and orders the
// survivors with its sort key.
func (e *Engine) Search(listings []models.Listing, q Query) Result {
	q.ClampPrices(e.priceCeiling)

	matched := make([]models.Listing, 0, len(listings))
	for i := range listings {
		if Matches(&listings[i], &q) {
			matched = append(matched, listings[i])
		}
	}

	ordered := Sorted(matched, q.Sort)
	return Result{Count: len(ordered), Listings: ordered}
}

// Latest returns the k most recent listings of the full collection. The
// collection is sorted first and truncated after, never the reverse.
func (e *Engine) Latest(listings []models.Listing, k int) []models.Listing {
	return truncate(Sorted(listings, SortNewest), k)
}

// Related returns up to k listings sharing the current listing's category
// (case-insensitive exact match), excluding the listing itself and anything
// unavailable, most recent first.
func (e *Engine) Related(listings []models.Listing, current *models.Listing, k int) []models.Listing {
	category := strings.TrimSpace(current.Category)
	if category == "" {
		return nil
	}

	scoped := make([]models.Listing, 0, k)
	for i := range listings {
		l := &listings[i]
		if l.ID == current.ID || !l.IsAvailable {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(l.Category), category) {
			continue
		}
		scoped = append(scoped, listings[i])
	}

	return truncate(Sorted(scoped, SortNewest), k)
}

// FindByID locates a listing in the collection by its opaque id.
func FindByID(listings []models.Listing, id string) *models.Listing {
	for i := range listings {
		if listings[i].ID == id {
			return &listings[i]
		}
	}
	return nil
}

func truncate(listings []models.Listing, k int) []models.Listing {
	if k >= 0 && len(listings) > k {
		return listings[:k]
	}
	return listings
}
