package catalog

import (
	"strings"

	"immolist/server/internal/models"
)

// Matches reports whether a listing satisfies every active filter. Each
// predicate is independently pure; the conjunction short-circuits in the
// cheapest-first order.
func Matches(l *models.Listing, q *Query) bool {
	return MatchesAvailability(l, q) &&
		MatchesPurpose(l, q) &&
		MatchesPrice(l, q) &&
		MatchesSurface(l, q) &&
		MatchesCategory(l, q) &&
		MatchesText(l, q)
}

// MatchesText passes when the search text is empty or the case-folded title,
// address or description contains it as a substring.
func MatchesText(l *models.Listing, q *Query) bool {
	term := strings.ToLower(strings.TrimSpace(q.SearchText))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Address), term) ||
		strings.Contains(strings.ToLower(l.Description), term)
}

// MatchesCategory passes on the "All" sentinel or an exact case-insensitive
// category match. Substring matches do not count.
func MatchesCategory(l *models.Listing, q *Query) bool {
	selected := strings.TrimSpace(q.Category)
	if selected == "" || strings.EqualFold(selected, CategoryAll) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(l.Category), selected)
}

// MatchesPurpose passes on the ALL filter, on listings with no stated
// purpose, or on an exact purpose match.
func MatchesPurpose(l *models.Listing, q *Query) bool {
	if q.Purpose == "" || q.Purpose == PurposeAll {
		return true
	}
	if l.Purpose == models.PurposeUnknown {
		return true
	}
	return l.Purpose == q.Purpose
}

func MatchesAvailability(l *models.Listing, q *Query) bool {
	return !q.AvailableOnly || l.IsAvailable
}

func MatchesPrice(l *models.Listing, q *Query) bool {
	return l.Price >= q.PriceMin && l.Price <= q.PriceMax
}

// MatchesSurface passes when each set bound is satisfied. A listing without a
// surface area passes only while both bounds are absent: nil never satisfies
// a numeric comparison and is not coerced to zero.
func MatchesSurface(l *models.Listing, q *Query) bool {
	if q.SurfaceMin == nil && q.SurfaceMax == nil {
		return true
	}
	if l.SurfaceArea == nil {
		return false
	}
	if q.SurfaceMin != nil && *l.SurfaceArea < *q.SurfaceMin {
		return false
	}
	if q.SurfaceMax != nil && *l.SurfaceArea > *q.SurfaceMax {
		return false
	}
	return true
}
