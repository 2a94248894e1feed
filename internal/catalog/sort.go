package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"immolist/server/internal/models"
)

// Sorted returns a new slice ordered by the given sort key. The input is
// never mutated and all comparators are stable: listings with equal keys keep
// their relative input order.
func Sorted(listings []models.Listing, key SortKey) []models.Listing {
	out := make([]models.Listing, len(listings))
	copy(out, listings)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case SortNameAsc:
		collator := collate.New(language.French, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return newer(&out[i], &out[j])
		})
	}
	return out
}

// newer orders listings by recency: creation time first, numeric id as the
// tie-break. Listings without a creation time sort by id alone.
func newer(a, b *models.Listing) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.NumericID() > b.NumericID()
}
