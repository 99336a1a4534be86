package signals_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/signals"
)

var frozen = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return frozen.AddDate(0, 0, -n) }

func TestCountInclusiveBounds(t *testing.T) {
	events := []signals.Event{
		{Date: daysAgo(30), Kind: domain.SignalHeat},
		{Date: daysAgo(15), Kind: domain.SignalPests},
		{Date: frozen, Kind: domain.SignalNoise},
		{Date: daysAgo(31), Kind: domain.SignalHeat},
	}

	c := signals.Count(events, daysAgo(30), frozen)
	assert.Equal(t, 1, c.Heat)
	assert.Equal(t, 1, c.Pests)
	assert.Equal(t, 1, c.Noise)
	assert.Equal(t, 3, c.Total)
}

func TestBuildWindowDeltas(t *testing.T) {
	events := []signals.Event{
		// Current 30 days: two heat events.
		{Date: daysAgo(5), Kind: domain.SignalHeat},
		{Date: daysAgo(10), Kind: domain.SignalHeat},
		// Prior 30 days: three pest events.
		{Date: daysAgo(35), Kind: domain.SignalPests},
		{Date: daysAgo(40), Kind: domain.SignalPests},
		{Date: daysAgo(45), Kind: domain.SignalPests},
	}

	w := signals.BuildWindow(events, frozen, 30)
	assert.Equal(t, 2, w.Counts.Heat)
	assert.Equal(t, 0, w.Counts.Pests)
	assert.Equal(t, 2, w.Counts.Total)
	assert.Equal(t, 2, w.Deltas.Heat)
	assert.Equal(t, -3, w.Deltas.Pests)
	assert.Equal(t, -1, w.Deltas.Total)
}

func TestWindowsStandardSet(t *testing.T) {
	w := signals.Windows(nil, frozen)
	require.Len(t, w, 4)
	for _, key := range []string{"30d", "90d", "1y", "3y"} {
		assert.Contains(t, w, key)
		assert.Zero(t, w[key].Counts.Total)
	}
	assert.Equal(t, frozen.AddDate(0, 0, -365), w["1y"].Start)
}

func TestDailySeriesFixedCardinality(t *testing.T) {
	events := []signals.Event{
		{Date: daysAgo(2), Kind: domain.SignalHeat},
		{Date: daysAgo(2), Kind: domain.SignalNoise},
	}

	series := signals.DailySeries(events, frozen)
	require.Len(t, series, 30)

	// Last bucket is today, zero events but present.
	assert.Equal(t, "Jun 15", series[29].Label)
	assert.Zero(t, series[29].Total)

	assert.Equal(t, "Jun 13", series[27].Label)
	assert.Equal(t, 1, series[27].Heat)
	assert.Equal(t, 1, series[27].Noise)
	assert.Equal(t, 2, series[27].Total)
}

func TestWeeklySeriesFixedCardinality(t *testing.T) {
	series := signals.WeeklySeries(nil, frozen)
	require.Len(t, series, 13)
	for _, p := range series {
		assert.Zero(t, p.Total)
		assert.NotEmpty(t, p.Label)
	}
}

func TestMonthlySeriesBucketsByCalendarMonth(t *testing.T) {
	events := []signals.Event{
		{Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Kind: domain.SignalPests},
		{Date: time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC), Kind: domain.SignalPests},
		{Date: time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC), Kind: domain.SignalHeat},
	}

	series := signals.MonthlySeries(events, frozen)
	require.Len(t, series, 36)

	assert.Equal(t, "Jun 24", series[35].Label)
	assert.Equal(t, 1, series[35].Pests)
	assert.Equal(t, "May 24", series[34].Label)
	assert.Equal(t, 1, series[34].Pests)
	// Oldest bucket is July 2021.
	assert.Equal(t, "Jul 21", series[0].Label)
	assert.Equal(t, 1, series[0].Heat)
}

func TestSeriesPointTotalsAreSums(t *testing.T) {
	events := []signals.Event{
		{Date: frozen, Kind: domain.SignalHeat},
		{Date: frozen, Kind: domain.SignalPests},
		{Date: frozen, Kind: domain.SignalOther},
	}
	series := signals.DailySeries(events, frozen)
	p := series[29]
	assert.Equal(t, p.Heat+p.Pests+p.Noise+p.Other, p.Total)
	assert.Equal(t, 3, p.Total)
}
