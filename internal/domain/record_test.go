package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/domain"
)

func TestStrProbesKeysInOrder(t *testing.T) {
	rec := domain.Record{"a": "", "b": "value", "n": float64(42)}

	assert.Equal(t, "value", rec.Str("a", "b"))
	assert.Equal(t, "42", rec.Str("n"))
	assert.Equal(t, "", rec.Str("missing"))
}

func TestFloatParsesStringsAndNumbers(t *testing.T) {
	rec := domain.Record{"s": "12.5", "f": float64(3), "bad": "n/a", "pad": " 7 "}

	assert.Equal(t, 12.5, rec.Float("s"))
	assert.Equal(t, 3.0, rec.Float("f"))
	assert.Equal(t, 0.0, rec.Float("bad"))
	assert.Equal(t, 7.0, rec.Float("pad"))
	assert.Equal(t, 0.0, rec.Float("missing"))
}

func TestDateTriesKnownLayouts(t *testing.T) {
	rec := domain.Record{
		"socrata": "2024-03-15T00:00:00.000",
		"plain":   "2024-03-15",
		"us":      "03/15/2024",
		"junk":    "soon",
	}

	for _, key := range []string{"socrata", "plain", "us"} {
		got, ok := rec.Date(key)
		require.True(t, ok, key)
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	_, ok := rec.Date("junk")
	assert.False(t, ok)
}

func TestYearReturnsDigitPrefix(t *testing.T) {
	rec := domain.Record{"d": "2019-06-01T00:00:00.000", "short": "19", "word": "none"}

	assert.Equal(t, "2019", rec.Year("d"))
	assert.Equal(t, "", rec.Year("short"))
	assert.Equal(t, "", rec.Year("word"))
}

func TestCoordinatesFlatColumns(t *testing.T) {
	rec := domain.Record{"latitude": "40.71", "longitude": "-73.99"}

	lat, lng, ok := rec.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 40.71, lat, 1e-9)
	assert.InDelta(t, -73.99, lng, 1e-9)
}

func TestCoordinatesGeoJSONPoint(t *testing.T) {
	rec := domain.Record{
		"the_geom": map[string]any{
			"type":        "Point",
			"coordinates": []any{-73.95, 40.68},
		},
	}

	lat, lng, ok := rec.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 40.68, lat, 1e-9)
	assert.InDelta(t, -73.95, lng, 1e-9)
}

func TestCoordinatesNestedLocation(t *testing.T) {
	rec := domain.Record{
		"location": map[string]any{"latitude": "40.6", "longitude": "-74.0"},
	}

	lat, lng, ok := rec.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 40.6, lat, 1e-9)
	assert.InDelta(t, -74.0, lng, 1e-9)
}

func TestCoordinatesAbsent(t *testing.T) {
	_, _, ok := domain.Record{"address": "1 MAIN ST"}.Coordinates()
	assert.False(t, ok)
}
