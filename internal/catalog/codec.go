package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"immolist/server/internal/models"
)

// Query-string keys of the shareable catalog link format.
const (
	paramPurpose    = "purpose"
	paramCategory   = "category"
	paramAddress    = "address"
	paramMinPrice   = "minPrice"
	paramMaxPrice   = "maxPrice"
	paramMinSurface = "minSurface"
	paramMaxSurface = "maxSurface"
)

// Encode maps a query to its shareable query-string values. Neutral fields
// are omitted, except the price bounds which are always written so links stay
// stable as the range is adjusted.
func Encode(q Query) url.Values {
	values := url.Values{}

	if q.Purpose != "" && q.Purpose != PurposeAll {
		values.Set(paramPurpose, q.Purpose)
	}
	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, CategoryAll) {
		values.Set(paramCategory, c)
	}
	if term := strings.TrimSpace(q.SearchText); term != "" {
		values.Set(paramAddress, term)
	}

	values.Set(paramMinPrice, strconv.FormatInt(q.PriceMin, 10))
	values.Set(paramMaxPrice, strconv.FormatInt(q.PriceMax, 10))

	if q.SurfaceMin != nil {
		values.Set(paramMinSurface, strconv.FormatFloat(*q.SurfaceMin, 'f', -1, 64))
	}
	if q.SurfaceMax != nil {
		values.Set(paramMaxSurface, strconv.FormatFloat(*q.SurfaceMax, 'f', -1, 64))
	}

	return values
}

// EncodeString renders the encoded query as a query string without the
// leading "?".
func EncodeString(q Query) string {
	return Encode(q).Encode()
}

// Decode rebuilds a query from query-string values, defaulting every absent
// field to its neutral value. Unparseable numeric inputs count as absent; the
// decoded range is re-clamped so decode(encode(q)) always satisfies the query
// invariants.
func Decode(values url.Values, priceCeiling int64) Query {
	q := DefaultQuery(priceCeiling)

	switch strings.ToUpper(values.Get(paramPurpose)) {
	case models.PurposeSale:
		q.Purpose = models.PurposeSale
	case models.PurposeRent:
		q.Purpose = models.PurposeRent
	}

	if c := strings.TrimSpace(values.Get(paramCategory)); c != "" {
		q.Category = c
	}
	q.SearchText = strings.TrimSpace(values.Get(paramAddress))

	if v, err := strconv.ParseInt(values.Get(paramMinPrice), 10, 64); err == nil {
		q.PriceMin = v
	}
	if v, err := strconv.ParseInt(values.Get(paramMaxPrice), 10, 64); err == nil {
		q.PriceMax = v
	}
	q.ClampPrices(priceCeiling)

	q.SurfaceMin = parseSurface(values.Get(paramMinSurface))
	q.SurfaceMax = parseSurface(values.Get(paramMaxSurface))

	return q
}

// DecodeString parses a raw query string, tolerating a leading "?".
func DecodeString(raw string, priceCeiling int64) Query {
	raw = strings.TrimPrefix(raw, "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return DefaultQuery(priceCeiling)
	}
	return Decode(values, priceCeiling)
}

// parseSurface treats invalid or negative bounds as absent rather than
// erroring: a non-numeric surface input simply disables that bound.
func parseSurface(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
