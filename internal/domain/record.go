package domain

import (
	"strconv"
	"strings"
	"time"
)

// Record is one loosely-typed row from an external dataset. Field names and
// shapes vary per source, so values are probed through the helpers below
// rather than unmarshalled into fixed structs at fetch time.
type Record map[string]any

// Str returns the first non-empty string value among the candidate keys.
// Numeric JSON values are formatted; other shapes yield "".
func (r Record) Str(keys ...string) string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// Float returns the first parseable numeric value among the candidate keys,
// or 0. Socrata returns most numbers as strings.
func (r Record) Float(keys ...string) float64 {
	for _, k := range keys {
		switch v := r[k].(type) {
		case float64:
			return v
		case string:
			if v = strings.TrimSpace(v); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					return f
				}
			}
		}
	}
	return 0
}

// Bool reports whether any candidate key holds a true value, accepting both
// JSON booleans and the string "true".
func (r Record) Bool(keys ...string) bool {
	for _, k := range keys {
		switch v := r[k].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			if v == "true" {
				return true
			}
		}
	}
	return false
}

// Date returns the first parseable date among the candidate keys. Records
// with no parseable date are excluded from date-bucketed aggregates, so the
// second return distinguishes "no date" from a zero time.
func (r Record) Date(keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if s, okStr := r[k].(string); okStr && s != "" {
			if t, okParse := ParseDate(s); okParse {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// dateLayouts covers the formats seen across the source datasets: Socrata
// floating timestamps, plain dates, and US-style dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate attempts each known layout in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Year returns the 4-digit year prefix of the first non-empty date-like
// string among the candidate keys, or "" when absent. Used for year
// histograms, which bucket on the raw string rather than a parsed time.
func (r Record) Year(keys ...string) string {
	s := r.Str(keys...)
	if len(s) < 4 {
		return ""
	}
	yr := s[:4]
	for _, c := range yr {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return yr
}

// Coordinates probes the shapes under which source datasets expose a point:
// flat latitude/longitude columns (several spellings), GeoJSON-style
// the_geom/geom objects with [lng,lat] coordinates, and nested location
// objects. ok is false when no usable pair is found.
func (r Record) Coordinates() (lat, lng float64, ok bool) {
	lat = r.Float("latitude", "lat", "gtfs_latitude")
	lng = r.Float("longitude", "lon", "lng", "gtfs_longitude")
	if lat != 0 && lng != 0 {
		return lat, lng, true
	}
	for _, k := range []string{"the_geom", "geom", "location"} {
		obj, isMap := r[k].(map[string]any)
		if !isMap {
			continue
		}
		if coords, isSlice := obj["coordinates"].([]any); isSlice && len(coords) == 2 {
			x, xOK := coords[0].(float64)
			y, yOK := coords[1].(float64)
			if xOK && yOK && x != 0 && y != 0 {
				return y, x, true
			}
		}
		nested := Record(obj)
		la := nested.Float("latitude", "lat")
		ln := nested.Float("longitude", "lon", "lng")
		if la != 0 && ln != 0 {
			return la, ln, true
		}
	}
	return 0, 0, false
}
