package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"immolist/server/internal/models"
)

// DefaultTitle is substituted when a record carries neither a title nor a name.
const DefaultTitle = "Untitled"

// Normalizer converts heterogeneous raw listing payloads into canonical
// Listings. Malformed fields are absorbed with defaults; it never fails a
// whole record.
type Normalizer struct {
	origin string
	logger *logrus.Logger
}

// NewNormalizer creates a Normalizer that resolves relative image paths
// against the given backend origin.
func NewNormalizer(origin string, logger *logrus.Logger) *Normalizer {
	return &Normalizer{
		origin: strings.TrimRight(origin, "/"),
		logger: logger,
	}
}

// Records normalizes a raw payload slice, preserving input order.
func (n *Normalizer) Records(raw []map[string]interface{}) []models.Listing {
	listings := make([]models.Listing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, n.Record(r))
	}
	if n.logger != nil {
		n.logger.WithField("count", len(listings)).Debug("Normalized listing records")
	}
	return listings
}

// Record normalizes a single raw listing object.
func (n *Normalizer) Record(raw map[string]interface{}) models.Listing {
	l := models.Listing{
		ID:          stringValue(raw["id"]),
		Title:       DefaultTitle,
		Description: stringValue(raw["description"]),
		IsAvailable: ParseBool(raw["isAvailable"]),
		OnPromotion: ParseBool(raw["onPromotion"]),
	}

	if v := firstNonEmpty(raw, "title", "name"); v != nil {
		l.Title = stringValue(v)
	}
	if v := firstNonEmpty(raw, "category", "type"); v != nil {
		l.Category = stringValue(v)
	}
	if v := firstNonEmpty(raw, "address", "city", "location"); v != nil {
		l.Address = stringValue(v)
	}
	l.City = stringValue(raw["city"])
	l.Purpose = normalizePurpose(firstNonEmpty(raw, "purpose", "transaction"))

	l.Price = priceValue(firstNonEmpty(raw, "price", "currentPrice"))
	if v := firstNonEmpty(raw, "previousPrice", "oldPrice"); v != nil {
		if p, ok := toFloat(v); ok && p >= 0 {
			prev := int64(p)
			l.PreviousPrice = &prev
		}
	}

	l.SurfaceArea = optionalFloat(firstNonEmpty(raw, "surfaceM2", "surface", "area", "size"))
	l.Bedrooms = optionalInt(firstNonEmpty(raw, "bedrooms", "rooms", "chambres"))
	l.Bathrooms = optionalInt(raw["bathrooms"])
	l.Latitude = optionalFloat(raw["latitude"])
	l.Longitude = optionalFloat(raw["longitude"])

	if imgs, ok := raw["images"].([]interface{}); ok {
		l.Images = n.images(imgs)
	}

	if v := firstNonEmpty(raw, "createdAt", "created_at"); v != nil {
		l.CreatedAt = parseTime(stringValue(v))
	}

	return l
}

// Categories normalizes a raw category payload slice.
func (n *Normalizer) Categories(raw []map[string]interface{}) []models.Category {
	categories := make([]models.Category, 0, len(raw))
	for _, r := range raw {
		categories = append(categories, n.CategoryRecord(r))
	}
	return categories
}

// CategoryRecord normalizes a single raw category object.
func (n *Normalizer) CategoryRecord(raw map[string]interface{}) models.Category {
	c := models.Category{Name: stringValue(firstNonEmpty(raw, "name", "title"))}
	if id, ok := toFloat(raw["id"]); ok {
		c.ID = int64(id)
	}
	if v := firstNonEmpty(raw, "imageUrl", "image_url", "image"); v != nil {
		c.ImageURL = n.ImageURL(v)
	}
	return c
}

// images resolves raw image entries in order, dropping entries that resolve
// to nothing. The first survivor is the primary image.
func (n *Normalizer) images(raw []interface{}) []string {
	urls := make([]string, 0, len(raw))
	for _, entry := range raw {
		if url := n.ImageURL(entry); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// ImageURL resolves one raw image entry to an absolute URL. An entry may be a
// bare path string or an object keyed by path/url/image/src. Already-absolute
// URLs pass through unchanged; relative paths get backslashes normalized and
// the backend origin prefixed with exactly one separating slash.
func (n *Normalizer) ImageURL(entry interface{}) string {
	var path string
	switch img := entry.(type) {
	case string:
		path = img
	case map[string]interface{}:
		for _, key := range []string{"path", "url", "image", "src"} {
			if s, ok := img[key].(string); ok && s != "" {
				path = s
				break
			}
		}
	}
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	path = strings.ReplaceAll(path, `\`, "/")
	if strings.HasPrefix(path, "/") {
		return n.origin + path
	}
	return n.origin + "/" + path
}

// ParseBool applies the catalog's permissive availability coercion: a value is
// false only when it is exactly boolean false, numeric zero, the
// case-insensitive string "false", or absent. Everything else is true,
// the string "0" included.
func ParseBool(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case string:
		return !strings.EqualFold(val, "false")
	default:
		return true
	}
}

// firstNonEmpty returns the first raw value among keys that is non-nil and,
// for strings, non-empty after trimming. Source types are preserved.
func firstNonEmpty(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

func normalizePurpose(v interface{}) string {
	switch strings.ToUpper(strings.TrimSpace(stringValue(v))) {
	case models.PurposeSale:
		return models.PurposeSale
	case models.PurposeRent:
		return models.PurposeRent
	default:
		return models.PurposeUnknown
	}
}

// priceValue coerces a raw price to a non-negative integer; anything
// unparseable becomes 0 so sorting never sees NaN.
func priceValue(v interface{}) int64 {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return 0
	}
	return int64(f)
}

func optionalFloat(v interface{}) *float64 {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

func optionalInt(v interface{}) *int {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return nil
	}
	i := int(f)
	return &i
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
