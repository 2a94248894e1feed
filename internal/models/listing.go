package models

import (
	"strconv"
	"time"
)

// Purpose values a listing can carry after normalization. An empty purpose
// means the source did not state one; such listings match any purpose filter.
const (
	PurposeSale    = "SALE"
	PurposeRent    = "RENT"
	PurposeUnknown = ""
)

type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Purpose       string    `json:"purpose"`
	Price         int64     `json:"price"`
	PreviousPrice *int64    `json:"previousPrice,omitempty"`
	OnPromotion   bool      `json:"onPromotion"`
	SurfaceArea   *float64  `json:"surfaceArea,omitempty"`
	Bedrooms      *int      `json:"bedrooms,omitempty"`
	Bathrooms     *int      `json:"bathrooms,omitempty"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	IsAvailable   bool      `json:"isAvailable"`
	Images        []string  `json:"images"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NumericID returns the listing id parsed as an integer, or 0 when the id is
// not numeric. Used as the recency fallback when no creation time is known.
func (l *Listing) NumericID() int64 {
	n, err := strconv.ParseInt(l.ID, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PrimaryImage returns the first normalized image URL, or "" when the listing
// has no images.
func (l *Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// HasCoordinates reports whether the listing carries a usable geolocation.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}
