package catalog

// CategoryAll is the sentinel category selection matching every listing.
const CategoryAll = "All"

// PurposeAll is the purpose filter value matching every listing.
const PurposeAll = "ALL"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
)

// ValidSortKey reports whether key names a known comparator.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc:
		return true
	}
	return false
}

// Query is the full set of active filter and sort selections for a catalog
// view. The zero value is not meaningful; use DefaultQuery.
type Query struct {
	SearchText    string
	Category      string
	Purpose       string // ALL, SALE or RENT
	AvailableOnly bool
	PriceMin      int64
	PriceMax      int64
	SurfaceMin    *float64 // nil means unbounded
	SurfaceMax    *float64
	Sort          SortKey
}

// DefaultQuery returns the neutral query: everything matches, newest first.
func DefaultQuery(priceCeiling int64) Query {
	return Query{
		Category:      CategoryAll,
		Purpose:       PurposeAll,
		AvailableOnly: true,
		PriceMin:      0,
		PriceMax:      priceCeiling,
		Sort:          SortNewest,
	}
}

// ClampPrices restores the price-range invariant 0 <= min <= max <= ceiling.
// Violations are clamped, never rejected: the lower bound yields when the two
// cross.
func (q *Query) ClampPrices(ceiling int64) {
	q.PriceMin = clampPrice(q.PriceMin, ceiling)
	q.PriceMax = clampPrice(q.PriceMax, ceiling)
	if q.PriceMin > q.PriceMax {
		q.PriceMin = q.PriceMax
	}
}

func clampPrice(v, ceiling int64) int64 {
	if v < 0 {
		return 0
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
