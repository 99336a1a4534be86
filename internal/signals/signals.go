// Package signals builds trend signals from classified events: sliding
// windows with period-over-period deltas, and fixed-cardinality time series
// for charting. Everything here is a pure function of the event list and an
// explicit reference time, so tests can freeze "now".
package signals

import (
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
)

// Event is one classified occurrence: a complaint, service request, failed
// inspection, or bedbug filing with a parseable date.
type Event struct {
	Date time.Time
	Kind domain.SignalKind
}

// Counts holds per-kind event counts. Total is always the sum of the kinds.
type Counts struct {
	Heat  int `json:"heat"`
	Pests int `json:"pests"`
	Noise int `json:"noise"`
	Other int `json:"other"`
	Total int `json:"total"`
}

func (c *Counts) add(kind domain.SignalKind) {
	switch kind {
	case domain.SignalHeat:
		c.Heat++
	case domain.SignalPests:
		c.Pests++
	case domain.SignalNoise:
		c.Noise++
	default:
		c.Other++
	}
	c.Total++
}

func (c Counts) sub(prev Counts) Counts {
	return Counts{
		Heat:  c.Heat - prev.Heat,
		Pests: c.Pests - prev.Pests,
		Noise: c.Noise - prev.Noise,
		Other: c.Other - prev.Other,
		Total: c.Total - prev.Total,
	}
}

// Count tallies events within [start, end] inclusive.
func Count(events []Event, start, end time.Time) Counts {
	var c Counts
	for _, e := range events {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		c.add(e.Kind)
	}
	return c
}

// Window is a trailing period with counts and deltas versus the immediately
// preceding period of equal length. Deltas can be negative.
type Window struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Counts Counts    `json:"counts"`
	Deltas Counts    `json:"deltas"`
}

// BuildWindow computes the trailing window of the given number of days
// ending at now.
func BuildWindow(events []Event, now time.Time, days int) Window {
	start := now.AddDate(0, 0, -days)
	prevStart := start.AddDate(0, 0, -days)

	counts := Count(events, start, now)
	prev := Count(events, prevStart, start)

	return Window{
		Start:  start,
		End:    now,
		Counts: counts,
		Deltas: counts.sub(prev),
	}
}

// Windows computes the standard 30d/90d/1y/3y trailing windows.
func Windows(events []Event, now time.Time) map[string]Window {
	return map[string]Window{
		"30d": BuildWindow(events, now, 30),
		"90d": BuildWindow(events, now, 90),
		"1y":  BuildWindow(events, now, 365),
		"3y":  BuildWindow(events, now, 365*3),
	}
}

// SeriesPoint is one chart bucket. Buckets with zero events report explicit
// zero counts, never absence: the series cardinality is fixed.
type SeriesPoint struct {
	Label string `json:"label"`
	Heat  int    `json:"heat"`
	Pests int    `json:"pests"`
	Noise int    `json:"noise"`
	Other int    `json:"other"`
	Total int    `json:"total"`
}

func point(label string, c Counts) SeriesPoint {
	return SeriesPoint{Label: label, Heat: c.Heat, Pests: c.Pests, Noise: c.Noise, Other: c.Other, Total: c.Total}
}

// DailySeries returns 30 daily buckets ending today.
func DailySeries(events []Event, now time.Time) []SeriesPoint {
	out := make([]SeriesPoint, 0, 30)
	for i := 29; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24*time.Hour - time.Nanosecond)
		out = append(out, point(start.Format("Jan 2"), Count(events, start, end)))
	}
	return out
}

// WeeklySeries returns 13 weekly buckets ending today, labeled by week start.
func WeeklySeries(events []Event, now time.Time) []SeriesPoint {
	out := make([]SeriesPoint, 0, 13)
	for i := 12; i >= 0; i-- {
		endDay := now.AddDate(0, 0, -i*7)
		end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 999999999, endDay.Location())
		startDay := end.AddDate(0, 0, -6)
		start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, startDay.Location())
		out = append(out, point(start.Format("Jan 2"), Count(events, start, end)))
	}
	return out
}

// MonthlySeries returns 36 calendar-month buckets ending in the current
// month, labeled like "Mar 24".
func MonthlySeries(events []Event, now time.Time) []SeriesPoint {
	out := make([]SeriesPoint, 0, 36)
	for i := 35; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
		out = append(out, point(first.Format("Jan 06"), Count(events, first, end)))
	}
	return out
}
