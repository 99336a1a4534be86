package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/signals"
)

// money renders a dollar amount the way the timeline shows it.
func money(n float64) string {
	switch {
	case n >= 1e6:
		return fmt.Sprintf("$%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("$%.0fK", n/1e3)
	default:
		return fmt.Sprintf("$%.0f", n)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// buildTimeline merges violations, complaints, sales, evictions, and
// litigation into one newest-first history, capped at 100 entries.
func buildTimeline(hpd, dob []ViolationItem, comps []ComplaintItem, sales []SaleItem, evictions []EvictionItem, lits []LitigationItem) []TimelineEvent {
	var tl []TimelineEvent

	for i, v := range hpd {
		if i >= 40 || v.Date == "" {
			continue
		}
		severity := "low"
		switch v.Class {
		case "C":
			severity = "high"
		case "B":
			severity = "medium"
		}
		tl = append(tl, TimelineEvent{
			Date: v.Date, Type: "violation", Source: "HPD " + v.Class,
			Description: truncate(v.Description, 120), Severity: severity, Status: v.Status,
		})
	}
	for i, v := range dob {
		if i >= 20 || v.Date == "" {
			continue
		}
		desc := v.Description
		if desc == "" {
			desc = v.Type
		}
		tl = append(tl, TimelineEvent{
			Date: v.Date, Type: "violation", Source: "DOB",
			Description: truncate(desc, 120), Severity: "medium", Status: v.Status,
		})
	}
	for i, c := range comps {
		if i >= 25 || c.Date == "" {
			continue
		}
		severity := "medium"
		if strings.Contains(strings.ToLower(c.Type), "heat") {
			severity = "high"
		}
		tl = append(tl, TimelineEvent{
			Date: c.Date, Type: "complaint", Source: "HPD",
			Description: c.Type + " complaint", Severity: severity,
		})
	}
	for i, s := range sales {
		if i >= 10 || s.Date == "" {
			continue
		}
		tl = append(tl, TimelineEvent{
			Date: s.Date, Type: "sale", Source: "ACRIS",
			Description: "Sold for " + money(s.Amount), Severity: "medium",
		})
	}
	for _, e := range evictions {
		if e.ExecutedDate == "" {
			continue
		}
		kind := e.Type
		if kind == "" {
			kind = "Residential"
		}
		tl = append(tl, TimelineEvent{
			Date: e.ExecutedDate, Type: "eviction", Source: "Marshal",
			Description: "Eviction (" + kind + ")", Severity: "high",
		})
	}
	for i, l := range lits {
		if i >= 10 || l.CaseOpenDate == "" {
			continue
		}
		tl = append(tl, TimelineEvent{
			Date: l.CaseOpenDate, Type: "litigation", Source: "HPD",
			Description: "Legal: " + l.CaseType, Severity: "high",
		})
	}

	sort.SliceStable(tl, func(i, j int) bool { return tl[i].Date > tl[j].Date })
	if len(tl) > 100 {
		tl = tl[:100]
	}
	return tl
}

// buildMonthlyTrend buckets HPD violations, DOB violations, and HPD
// complaints into the trailing 36 calendar months.
func buildMonthlyTrend(hpdViol, dobViol, hpdComp []domain.Record, now time.Time) []MonthlyTrendPoint {
	out := make([]MonthlyTrendPoint, 0, 36)
	for i := 35; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := first.AddDate(0, 1, 0).Add(-time.Nanosecond)

		hpdN := countInRange(hpdViol, first, end, "inspectiondate", "novissueddate")
		dobN := countInRange(dobViol, first, end, "issue_date")
		compN := countInRange(hpdComp, first, end, "receiveddate")

		out = append(out, MonthlyTrendPoint{
			Month:         first.Format("Jan"),
			Year:          first.Year(),
			MonthYear:     first.Format("Jan 06"),
			HPDViolations: hpdN,
			DOBViolations: dobN,
			Complaints:    compN,
			Total:         hpdN + dobN + compN,
		})
	}
	return out
}

func countInRange(recs []domain.Record, start, end time.Time, dateKeys ...string) int {
	n := 0
	for _, r := range recs {
		if d, ok := r.Date(dateKeys...); ok && !d.Before(start) && !d.After(end) {
			n++
		}
	}
	return n
}

// buildYearlyStats tabulates the headline counts for the current year and
// the ten before it.
func buildYearlyStats(hpdByYear map[string]YearBreakdown, dobByYear, compByYear, evictByYear map[string]int, now time.Time) []YearlyStat {
	out := make([]YearlyStat, 0, 11)
	for y := now.Year(); y >= now.Year()-10; y-- {
		key := fmt.Sprintf("%d", y)
		out = append(out, YearlyStat{
			Year:          y,
			HPDViolations: hpdByYear[key].Total,
			HPDClassC:     hpdByYear[key].ClassC,
			DOBViolations: dobByYear[key],
			Complaints:    compByYear[key],
			Evictions:     evictByYear[key],
		})
	}
	return out
}

// collectSignalEvents classifies the building-level event streams into the
// heat/pests/noise/other signal kinds.
func collectSignalEvents(hpdComp, sr311, rodentFailed, bedbugs []domain.Record) []signals.Event {
	var events []signals.Event
	for _, c := range hpdComp {
		if d, ok := c.Date("receiveddate"); ok {
			events = append(events, signals.Event{
				Date: d,
				Kind: domain.ClassifyHPDComplaint(c.Str("complainttype"), c.Str("majorcategory")),
			})
		}
	}
	for _, r := range sr311 {
		if d, ok := r.Date("created_date"); ok {
			events = append(events, signals.Event{
				Date: d,
				Kind: domain.Classify311(r.Str("complaint_type"), r.Str("descriptor")),
			})
		}
	}
	for _, r := range rodentFailed {
		if d, ok := r.Date("inspection_date"); ok {
			events = append(events, signals.Event{Date: d, Kind: domain.SignalPests})
		}
	}
	for _, b := range bedbugs {
		if d, ok := b.Date("filing_date"); ok {
			events = append(events, signals.Event{Date: d, Kind: domain.SignalPests})
		}
	}
	return events
}

func buildSignals(events []signals.Event, now time.Time) SignalsSection {
	return SignalsSection{
		Windows: signals.Windows(events, now),
		Series: SignalSeries{
			Daily30:   signals.DailySeries(events, now),
			Weekly90:  signals.WeeklySeries(events, now),
			Monthly36: signals.MonthlySeries(events, now),
		},
	}
}
