package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/domain"
)

func TestNormalizeStreet(t *testing.T) {
	assert.Equal(t, "123 e 45th st", domain.NormalizeStreet("123 East 45th Street"))
	assert.Equal(t, "st marks pl", domain.NormalizeStreet("St. Mark's Place"))
	assert.Equal(t, "ocean pkwy", domain.NormalizeStreet("OCEAN PKWY"))
}

func TestParseAddress(t *testing.T) {
	got := domain.ParseAddress("350 Fifth Avenue, Manhattan")
	assert.Equal(t, "350", got.HouseNumber)
	assert.Equal(t, "fifth avenue", got.StreetName)
	assert.Equal(t, "1", got.Borough)

	got = domain.ParseAddress("100-12 Queens Blvd")
	assert.Equal(t, "100-12", got.HouseNumber)
	assert.Equal(t, "queens blvd", got.StreetName)
	assert.Equal(t, "", got.Borough)

	got = domain.ParseAddress("broadway")
	assert.Equal(t, "", got.HouseNumber)
	assert.Equal(t, "broadway", got.StreetName)
}

func TestMatchAddressPicksBestCandidate(t *testing.T) {
	records := []domain.Record{
		{"address": "348 FIFTH AVENUE", "bbl": "1008350001"},
		{"address": "350 FIFTH AVENUE", "bbl": "1008350041"},
	}

	best, score := domain.MatchAddress(records, "350 Fifth Avenue, Manhattan")
	require.NotNil(t, best)
	assert.Equal(t, "350 FIFTH AVENUE", best.Str("address"))
	assert.GreaterOrEqual(t, score, 75.0)
}

func TestMatchAddressEmpty(t *testing.T) {
	best, score := domain.MatchAddress(nil, "anything")
	assert.Nil(t, best)
	assert.Zero(t, score)
}

func TestMatchConfidence(t *testing.T) {
	assert.Equal(t, "high", domain.MatchConfidence(92))
	assert.Equal(t, "medium", domain.MatchConfidence(60))
	assert.Equal(t, "low", domain.MatchConfidence(10))
}

func TestDistance(t *testing.T) {
	// Empire State Building to Bryant Park, roughly 500m.
	a := domain.GeoPoint{Lat: 40.748444, Lng: -73.985664}
	b := domain.GeoPoint{Lat: 40.753597, Lng: -73.983233}

	d := domain.Distance(a, b)
	assert.InDelta(t, 600, d, 100)
	assert.Zero(t, domain.Distance(a, a))
}
