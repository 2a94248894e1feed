package geometry

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"immolist/server/internal/models"
)

// listingPoint extracts a listing's location as lon/lat.
func listingPoint(l *models.Listing) (orb.Point, bool) {
	if !l.HasCoordinates() {
		return orb.Point{}, false
	}
	return orb.Point{*l.Longitude, *l.Latitude}, true
}

// Distance returns the great-circle distance in meters between two listings,
// or false when either lacks coordinates.
func Distance(a, b *models.Listing) (float64, bool) {
	pa, ok := listingPoint(a)
	if !ok {
		return 0, false
	}
	pb, ok := listingPoint(b)
	if !ok {
		return 0, false
	}
	return geo.Distance(pa, pb), true
}

// Nearby returns up to k available listings ordered by distance from the
// current listing, nearest first. Listings without coordinates, the listing
// itself and unavailable ones are skipped. Returns nil when the current
// listing has no coordinates.
func Nearby(listings []models.Listing, current *models.Listing, k int) []models.Listing {
	origin, ok := listingPoint(current)
	if !ok {
		return nil
	}

	type candidate struct {
		listing  models.Listing
		distance float64
	}

	var candidates []candidate
	for i := range listings {
		l := &listings[i]
		if l.ID == current.ID || !l.IsAvailable {
			continue
		}
		p, ok := listingPoint(l)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			listing:  listings[i],
			distance: geo.Distance(origin, p),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if k >= 0 && len(candidates) > k {
		candidates = candidates[:k]
	}

	nearby := make([]models.Listing, len(candidates))
	for i, c := range candidates {
		nearby[i] = c.listing
	}
	return nearby
}
